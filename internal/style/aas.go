package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// AAS (astrophysics journals) style: extremely terse comma-separated
// fields, year right after the authors, no title for articles.
//
//	Smith, J. A., & Jones, B. 2020, ApJ, 891, 45

// AAS tries the AAS work-type shapes. The style has no quoted-title or
// web-page shapes.
var AAS = parse.Alt(AASArticle, AASBook)

// aasFront parses the "Authors Year" prefix shared by AAS shapes.
func aasFront(in string) (field.AuthorList, field.YearSuffix, string, error) {
	list, rest, err := apaAuthors(in)
	if err != nil {
		return field.AuthorList{}, field.YearSuffix{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	ys, rest, err := field.Year(rest)
	if err != nil {
		return field.AuthorList{}, field.YearSuffix{}, in, parse.ErrNoMatch
	}
	return list, ys, rest, nil
}

// AASArticle parses an AAS journal article: journal abbreviation, volume,
// first page, all comma-separated. Articles carry no title.
func AASArticle(in string) (reference.Reference, string, error) {
	list, ys, rest, err := aasFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	if !strings.HasPrefix(rest, ",") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	journal, rest, err := untilAny(rest, ",")
	if err != nil || !strings.HasPrefix(rest, ",") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	volume, rest, err := field.BareNumber(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	var pages field.Pages
	if _, after, err := field.Sep(rest); err == nil {
		if pg, after2, err := field.PageRange(after); err == nil {
			pages = pg
			rest = after2
		}
	}

	ref := newRef(reference.Article, list, "", ys)
	ref.IsPartOf = container(journal, volume, "")
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// AASBook parses an AAS book: title followed by a parenthesised
// "(Place: Publisher)".
func AASBook(in string) (reference.Reference, string, error) {
	list, ys, rest, err := aasFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	if !strings.HasPrefix(rest, ",") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := untilAny(rest, "(")
	if err != nil || !strings.HasPrefix(rest, "(") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	inner := rest[1:end]
	rest = rest[end+1:]
	colon := strings.Index(inner, ":")
	if colon < 0 {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	place := strings.TrimSpace(inner[:colon])
	name := strings.TrimSpace(inner[colon+1:])
	if name == "" {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Book, list, title, ys)
	pub := reference.NewOrganization(name)
	pub.Address = place
	ref.Publisher = &pub
	rest = eatClosing(rest)
	return ref, rest, nil
}
