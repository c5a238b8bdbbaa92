// Package reference defines the core domain types for parsed bibliographic
// references.
package reference

import "strconv"

// WorkType classifies the kind of work a reference describes. It determines
// which fields of Reference are semantically populated.
type WorkType string

const (
	// Untyped marks a reference the parser could not classify. Produced by
	// the fallback extractor when no URL is present.
	Untyped WorkType = ""

	Article WorkType = "article"
	Book    WorkType = "book"
	Chapter WorkType = "chapter"
	WebPage WorkType = "webpage"
)

// Reference represents one parsed bibliography entry.
//
// A Reference is constructed once per parse and returned by value; it is
// never mutated afterwards.
type Reference struct {
	Type WorkType `json:"type,omitempty"`

	// ID is the deterministic citation identifier derived from authors,
	// year, and disambiguation suffix (see internal/refid).
	ID string `json:"id,omitempty"`

	Authors []Author `json:"authors,omitempty"`
	Title   Inlines  `json:"title,omitempty"`

	// IsPartOf describes the containing work: the journal for an article,
	// the book for a chapter, the proceedings for a conference paper, the
	// website for a web page. Only title, volume, issue, editors, and
	// publisher are meaningful on the nested value.
	IsPartOf *Reference `json:"is_part_of,omitempty"`

	Date *Date `json:"date,omitempty"`

	Volume string `json:"volume,omitempty"`
	Issue  string `json:"issue,omitempty"`

	PageStart *Page `json:"page_start,omitempty"`
	PageEnd   *Page `json:"page_end,omitempty"`

	// Pagination holds page identifiers that are not a start/end pair,
	// e.g. article numbers ("e0245312") or preprint identifiers.
	Pagination string `json:"pagination,omitempty"`

	// At most one of DOI and URL is set. A DOI string never also appears
	// as a URL.
	DOI string `json:"doi,omitempty"`
	URL string `json:"url,omitempty"`

	Publisher *Author  `json:"publisher,omitempty"`
	Editors   []Author `json:"editors,omitempty"`

	// Text holds raw cleaned text for the portion of the input that could
	// not be structured. Populated by the fallback extractor.
	Text string `json:"text,omitempty"`
}

// Date is a publication date at year granularity.
type Date struct {
	Year int `json:"year"`
}

// Year returns the year, or 0 when the date is unknown.
func (r *Reference) Year() int {
	if r.Date == nil {
		return 0
	}
	return r.Date.Year
}

// Page is a page identifier, numeric when possible. Non-numeric pages
// (Roman numerals, "S123", "D1257") carry the raw label instead.
type Page struct {
	Number int    `json:"number,omitempty"`
	Label  string `json:"label,omitempty"`
}

// ParsePage builds a Page from a raw token, numeric when the whole token
// is digits.
func ParsePage(s string) Page {
	if n, err := strconv.Atoi(s); err == nil {
		return Page{Number: n}
	}
	return Page{Label: s}
}

// String renders the page for display.
func (p Page) String() string {
	if p.Label != "" {
		return p.Label
	}
	return strconv.Itoa(p.Number)
}
