package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// APA style: family-first authors with initials, parenthesised year right
// after the authors, sentence-case title, italic journal with bare
// volume(issue).
//
//	Smith, J. A., & Jones, B. (2020). Title of paper. Journal of Things,
//	12(3), 45-67. https://doi.org/10.1234/abc

// APA tries all APA work-type shapes, most specific first.
var APA = parse.Alt(APAChapter, APAArticle, APAWeb, APABook)

// apaFront parses the shared "authors (year)." prefix.
func apaFront(in string) (field.AuthorList, field.YearSuffix, string, error) {
	list, rest, err := apaAuthors(in)
	if err != nil {
		return field.AuthorList{}, field.YearSuffix{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	ys, rest, err := parenYear(rest)
	if err != nil {
		return field.AuthorList{}, field.YearSuffix{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	return list, ys, rest, nil
}

// apaAuthors accepts the APA person list or an organization author.
func apaAuthors(in string) (field.AuthorList, string, error) {
	if list, rest, err := field.AuthorsFamilyInitials(in); err == nil {
		return list, rest, nil
	}
	org, rest, err := field.OrganizationAuthor(in)
	if err != nil {
		return field.AuthorList{}, in, err
	}
	return field.AuthorList{Authors: []reference.Author{org}}, rest, nil
}

// APAArticle parses an APA journal article.
func APAArticle(in string) (reference.Reference, string, error) {
	list, ys, rest, err := apaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
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
	issue, rest, _ := parse.Opt(field.ParenIssue)(rest)

	var pages field.Pages
	if _, after, err := field.Sep(rest); err == nil {
		if pg, after2, err := field.PageRange(after); err == nil {
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

// APAChapter parses an APA book chapter: "In Editor (Ed.), Book title
// (pp. 1-20). Publisher."
func APAChapter(in string) (reference.Reference, string, error) {
	list, ys, rest, err := apaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok := eatPrefixFold(rest, "in ")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	editors, rest, _ := parse.Opt(field.AuthorsInitialsFirst)(rest)
	_, rest, _ = field.SepOpt(rest)
	rest, edMarker := eatEditorMarker(rest)
	if len(editors.Authors) > 0 && !edMarker {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	bookTitle, rest, err := untilAny(rest, "(.")
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	var pages field.Pages
	if strings.HasPrefix(rest, "(") {
		if pg, after, err := field.PagesPrefixed(parse.SkipSpace(rest[1:])); err == nil {
			if after = parse.SkipSpace(after); strings.HasPrefix(after, ")") {
				pages = pg
				rest = after[1:]
			}
		}
	}
	_, rest, _ = field.SepOpt(rest)
	pub, rest, _ := parse.Opt(field.PublisherOnly)(rest)

	ref := newRef(reference.Chapter, list, title, ys)
	ref.IsPartOf = container(bookTitle, "", "")
	ref.IsPartOf.Editors = editors.Authors
	applyPages(&ref, pages)
	ref.Publisher = pub.Organization()
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// APABook parses an APA book: title then bare publisher.
func APABook(in string) (reference.Reference, string, error) {
	list, ys, rest, err := apaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	pub, rest, err := field.PublisherOnly(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Book, list, title, ys)
	ref.Publisher = pub.Organization()
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// APAWeb parses an APA web page: title, site name, URL.
func APAWeb(in string) (reference.Reference, string, error) {
	list, ys, rest, err := apaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)

	var site string
	if !strings.HasPrefix(rest, "http") {
		if s, after, err := untilAny(rest, "."); err == nil && !strings.Contains(s, "http") {
			site = s
			_, rest, _ = field.SepOpt(after)
		}
	}
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

// eatEditorMarker consumes "(Ed.)", "(Eds.)", "(Ed.),", "(eds.)" forms.
func eatEditorMarker(in string) (string, bool) {
	rest := parse.SkipSpace(in)
	if !strings.HasPrefix(rest, "(") {
		return in, false
	}
	body := parse.SkipSpace(rest[1:])
	lower := strings.ToLower(body)
	var n int
	switch {
	case strings.HasPrefix(lower, "eds."):
		n = 4
	case strings.HasPrefix(lower, "eds"):
		n = 3
	case strings.HasPrefix(lower, "ed."):
		n = 3
	case strings.HasPrefix(lower, "ed"):
		n = 2
	default:
		return in, false
	}
	body = parse.SkipSpace(body[n:])
	if !strings.HasPrefix(body, ")") {
		return in, false
	}
	return body[1:], true
}
