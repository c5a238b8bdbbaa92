package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// MLA style: family-then-given authors, quoted titles, container name
// followed by "vol."/"no." keywords, year between issue and pages.
//
//	Smith, John. "Understanding Climate Change." Environmental Science,
//	vol. 15, no. 3, 2023, pp. 45-67. https://doi.org/10.1234/example

// MLA tries all MLA work-type shapes, most specific first.
var MLA = parse.Alt(MLAChapter, MLAArticle, MLAWeb, MLABook)

// mlaFront parses the shared "Family, Given." author prefix.
func mlaFront(in string) (field.AuthorList, string, error) {
	list, rest, err := field.AuthorsFamilyGiven(in)
	if err != nil {
		org, after, oerr := field.OrganizationAuthor(in)
		if oerr != nil {
			return field.AuthorList{}, in, err
		}
		list = field.AuthorList{Authors: []reference.Author{org}}
		rest = after
	}
	_, rest, _ = field.SepOpt(rest)
	return list, rest, nil
}

// MLAArticle parses an MLA journal article.
func MLAArticle(in string) (reference.Reference, string, error) {
	list, rest, err := mlaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitleQuoted(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	journal, rest, err := untilAny(rest, ",")
	if err != nil || !strings.HasPrefix(rest, ",") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	var volume, issue string
	_, rest, _ = field.SepOpt(rest)
	if v, after, err := field.VolumeKeyword(rest); err == nil {
		volume = v
		_, rest, _ = field.SepOpt(after)
	}
	if n, after, err := field.IssueKeyword(rest); err == nil {
		issue = n
		_, rest, _ = field.SepOpt(after)
	}
	ys, rest, err := field.Year(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	var pages field.Pages
	if _, after, err := field.Sep(rest); err == nil {
		if pg, after2, err := field.PagesPrefixed(after); err == nil {
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

// MLAChapter parses an MLA anthology chapter: the container title is
// followed by "edited by" and a given-name-first editor list.
func MLAChapter(in string) (reference.Reference, string, error) {
	list, rest, err := mlaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitleQuoted(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	bookTitle, rest, err := untilAny(rest, ",")
	if err != nil || !strings.HasPrefix(rest, ",") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok := eatPrefixFold(rest, "edited by ")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	editors, rest, err := field.AuthorsGivenFamily(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)

	var pub field.PublisherPlace
	ys, after, err := field.Year(rest)
	if err != nil {
		name, after2, perr := untilAny(rest, ",.")
		if perr != nil {
			return reference.Reference{}, in, parse.ErrNoMatch
		}
		pub.Publisher = name
		_, after2, _ = field.SepOpt(after2)
		ys, after, err = field.Year(after2)
		if err != nil {
			return reference.Reference{}, in, parse.ErrNoMatch
		}
	}
	rest = after
	var pages field.Pages
	if _, after, err := field.Sep(rest); err == nil {
		if pg, after2, err := field.PagesPrefixed(after); err == nil {
			pages = pg
			rest = after2
		}
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

// MLABook parses an MLA book: unquoted title, publisher, year.
func MLABook(in string) (reference.Reference, string, error) {
	list, rest, err := mlaFront(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	name, rest, err := untilAny(rest, ",")
	if err != nil || !strings.HasPrefix(rest, ",") || strings.Contains(name, ":") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	ys, rest, err := field.Year(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Book, list, title, ys)
	pub := reference.NewOrganization(name)
	ref.Publisher = &pub
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// MLAWeb parses an MLA web page: quoted title, site name, optional year,
// URL, optional trailing access note.
func MLAWeb(in string) (reference.Reference, string, error) {
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
		if s, after, err := untilAny(rest, ",."); err == nil && !strings.Contains(s, "http") {
			site = s
			_, rest, _ = field.SepOpt(after)
		}
	}
	var ys field.YearSuffix
	if y, after, err := field.Year(rest); err == nil {
		ys = y
		_, rest, _ = field.SepOpt(after)
	}
	url, rest, err := field.URL(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	rest = eatAccessNote(rest)

	ref := newRef(reference.WebPage, list, title, ys)
	ref.URL = url
	ref.IsPartOf = container(site, "", "")
	rest = eatClosing(rest)
	return ref, rest, nil
}

// eatAccessNote consumes a trailing "Accessed 12 May 2020." note.
func eatAccessNote(in string) string {
	_, rest, _ := field.SepOpt(in)
	after, ok := eatPrefixFold(rest, "accessed ")
	if !ok {
		return in
	}
	if end := strings.IndexByte(after, '.'); end >= 0 {
		return after[end+1:]
	}
	return ""
}
