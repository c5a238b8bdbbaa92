package bib

import (
	"testing"

	"github.com/refsift/refsift/internal/reference"
)

func TestParseReferenceStyleDiscrimination(t *testing.T) {
	ref := ParseReference(`Smith, John. "Understanding Climate Change." Environmental Science, vol. 15, no. 3, 2023, pp. 45-67. https://doi.org/10.1234/example`)
	if ref.Type != reference.Article {
		t.Fatalf("Type = %q, want article", ref.Type)
	}
	if ref.IsPartOf == nil || ref.IsPartOf.Title.String() != "Environmental Science" {
		t.Fatalf("IsPartOf = %+v", ref.IsPartOf)
	}
	if ref.IsPartOf.Volume != "15" || ref.IsPartOf.Issue != "3" {
		t.Errorf("volume/issue = %q/%q", ref.IsPartOf.Volume, ref.IsPartOf.Issue)
	}
	if ref.PageStart == nil || ref.PageStart.Number != 45 || ref.PageEnd == nil || ref.PageEnd.Number != 67 {
		t.Errorf("pages = %v-%v", ref.PageStart, ref.PageEnd)
	}
	if ref.DOI != "10.1234/example" || ref.URL != "" {
		t.Errorf("doi/url = %q/%q", ref.DOI, ref.URL)
	}
	if ref.Year() != 2023 || ref.ID != "smith-2023" {
		t.Errorf("year/id = %d/%q", ref.Year(), ref.ID)
	}
}

func TestParseReferenceNeverFails(t *testing.T) {
	tests := []struct {
		name string
		in   string
		text string
	}{
		{name: "empty", in: "", text: ""},
		{name: "whitespace", in: "   ", text: ""},
		{name: "prose", in: "Totally unstructured prose.", text: "Totally unstructured prose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseReference(tt.in)
			if ref.Type != reference.Untyped {
				t.Errorf("Type = %q, want untyped", ref.Type)
			}
			if ref.Text != tt.text {
				t.Errorf("Text = %q, want %q", ref.Text, tt.text)
			}
		})
	}
}

func TestParseReferenceNumbering(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "bracketed", in: `[3] Smith, John. The Long Road Home. Penguin, 2020.`},
		{name: "dotted", in: `3. Smith, John. The Long Road Home. Penguin, 2020.`},
		{name: "bare number", in: `12 Smith, John. The Long Road Home. Penguin, 2020.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ParseReference(tt.in)
			if ref.Type != reference.Book {
				t.Fatalf("Type = %q, want book", ref.Type)
			}
			if ref.ID != "smith-2020" {
				t.Errorf("ID = %q", ref.ID)
			}
		})
	}
}

func TestParseReferenceYearNotNumbering(t *testing.T) {
	// A four-digit year opening an entry must not be stripped as a list
	// marker.
	ref := ParseReference(`2020 was a strange year for publishing.`)
	if ref.Type != reference.Untyped || ref.Text == "" {
		t.Errorf("ref = %+v", ref)
	}
}

func TestDispatchPartialPolicy(t *testing.T) {
	// Short trailing noise after a complete structured match is accepted.
	m, ok := Dispatch(`J. A. Smith, "A method," in Proc. Conf. on Things, 2019, pp. 1-8. zz`)
	if !ok {
		t.Fatal("short trailing noise was not accepted")
	}
	if m.Reference.Type != reference.Article || m.Reference.Year() != 2019 {
		t.Errorf("reference = %+v", m.Reference)
	}

	// A long unstructured tail routes the entry to fallback.
	_, ok = Dispatch(`Smith, John. "Understanding Climate Change." Environmental Science, vol. 15, no. 3, 2023, pp. 45-67. This trailing commentary was accidentally glued onto the entry by a bad OCR pass and keeps going.`)
	if ok {
		t.Fatal("long unstructured tail was accepted as structured")
	}
}

func TestParseReferenceFallbackDOI(t *testing.T) {
	ref := ParseReference(`Some mangled entry, see doi:10.5555/abc123.`)
	if ref.DOI != "10.5555/abc123" {
		t.Fatalf("DOI = %q", ref.DOI)
	}
	if ref.URL != "" {
		t.Errorf("URL = %q, want empty", ref.URL)
	}
	if ref.Text != "Some mangled entry, see" {
		t.Errorf("Text = %q", ref.Text)
	}
}

func TestParseReferenceFallbackURL(t *testing.T) {
	ref := ParseReference(`weird fragment https://example.com/page trailing words`)
	if ref.Type != reference.WebPage || ref.URL != "https://example.com/page" {
		t.Fatalf("ref = %+v", ref)
	}
	if ref.Text != "weird fragment trailing words" {
		t.Errorf("Text = %q", ref.Text)
	}
}

func TestDispatchVancouver(t *testing.T) {
	m, ok := Dispatch(`Smith JA, Jones B. Effects of things in medicine. J Abbrev Med. 2020;5(2):100-10.`)
	if !ok {
		t.Fatal("vancouver entry did not dispatch")
	}
	if m.Shape != "vancouver/article" {
		t.Errorf("Shape = %q", m.Shape)
	}
	if m.Reference.IsPartOf == nil || m.Reference.IsPartOf.Title.String() != "J Abbrev Med" {
		t.Errorf("IsPartOf = %+v", m.Reference.IsPartOf)
	}
}

func TestDispatchChapterBeforeBook(t *testing.T) {
	// The "In:" keyword must route to a chapter shape, not a book.
	m, ok := Dispatch(`Smith JA. Advanced methods. In: Jones B, editor. The big textbook. Boston: Health Press; 2019. p. 55-70.`)
	if !ok {
		t.Fatal("chapter entry did not dispatch")
	}
	if m.Reference.Type != reference.Chapter {
		t.Errorf("Type = %q, want chapter", m.Reference.Type)
	}
}
