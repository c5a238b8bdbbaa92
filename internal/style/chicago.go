package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// Chicago (notes-bibliography) style: family-then-given authors, quoted
// article titles, bare volume after the journal name, parenthesised year,
// colon before pages.
//
//	Smith, John. "Title of Article." Journal of Things 15, no. 3 (2023):
//	45-67. https://doi.org/10.1234/abc

// Chicago tries all Chicago work-type shapes, most specific first.
var Chicago = parse.Alt(ChicagoChapter, ChicagoArticle, ChicagoWeb, ChicagoBook)

// ChicagoArticle parses a Chicago journal article.
func ChicagoArticle(in string) (reference.Reference, string, error) {
	list, rest, err := mlaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitleQuoted(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	journal, rest, err := titleWords(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	volume, rest, err := field.BareNumber(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	var issue string
	_, rest, _ = field.SepOpt(rest)
	if n, after, err := field.IssueKeyword(rest); err == nil {
		issue = n
		rest = parse.SkipSpace(after)
	}
	ys, rest, err := parenYear(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	var pages field.Pages
	if after := parse.SkipSpace(rest); strings.HasPrefix(after, ":") {
		if pg, after2, err := field.PageRange(parse.SkipSpace(after[1:])); err == nil && pg.Start != nil {
			pages = pg
			rest = after2
		}
	}

	ref := newRef(reference.Article, list, title, ys)
	ref.IsPartOf = container(journal, volume, issue)
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// ChicagoChapter parses a Chicago book chapter: "In Book Title, edited by
// Editors, pages. Place: Publisher, year."
func ChicagoChapter(in string) (reference.Reference, string, error) {
	list, rest, err := mlaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitleQuoted(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok := eatPrefixFold(rest, "in ")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	bookTitle, rest, err := untilAny(rest, ",")
	if err != nil || !strings.HasPrefix(rest, ",") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok = eatPrefixFold(rest, "edited by ")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	editors, rest, err := field.AuthorsGivenFamily(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	var pages field.Pages
	_, rest, _ = field.SepOpt(rest)
	if pg, after, err := field.PageRange(rest); err == nil && pg.Start != nil {
		pages = pg
		_, rest, _ = field.SepOpt(after)
	}
	pub, rest, err := field.ColonPublisher(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	ys, rest, err := field.Year(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Chapter, list, title, ys)
	ref.IsPartOf = container(bookTitle, "", "")
	ref.IsPartOf.Editors = editors.Authors
	ref.Publisher = pub.Organization()
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// ChicagoBook parses a Chicago book: unquoted title, "Place: Publisher",
// year.
func ChicagoBook(in string) (reference.Reference, string, error) {
	list, rest, err := mlaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	pub, rest, err := field.ColonPublisher(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	ys, rest, err := field.Year(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Book, list, title, ys)
	ref.Publisher = pub.Organization()
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// ChicagoWeb parses a Chicago web page: quoted title, site name, optional
// access note, URL.
func ChicagoWeb(in string) (reference.Reference, string, error) {
	list, rest, err := mlaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitleQuoted(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)

	var site string
	if !strings.HasPrefix(rest, "http") {
		if s, after, err := untilAny(rest, ".,"); err == nil && !strings.Contains(s, "http") &&
			!strings.HasPrefix(strings.ToLower(s), "accessed") {
			site = s
			_, rest, _ = field.SepOpt(after)
		}
	}
	var ys field.YearSuffix
	if y, after, err := field.Year(rest); err == nil {
		ys = y
		_, rest, _ = field.SepOpt(after)
	}
	rest = eatAccessNote(rest)
	url, rest, err := field.URL(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.WebPage, list, title, ys)
	ref.URL = url
	ref.IsPartOf = container(site, "", "")
	rest = eatClosing(rest)
	return ref, rest, nil
}
