package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// ACS style: semicolon-separated family-plus-initials authors, abbreviated
// journal with internal periods, year before volume, semicolons between
// book segments.
//
//	Smith, J. A.; Jones, B. Title of Paper. J. Am. Chem. Soc. 2020, 142
//	(10), 1234-1240. DOI: 10.1021/abc

// ACS tries all ACS work-type shapes, most specific first.
var ACS = parse.Alt(ACSChapter, ACSArticle, ACSWeb, ACSBook)

// ACSArticle parses an ACS journal article. The journal is an abbreviation
// with internal periods, so it is captured up to the standalone year.
func ACSArticle(in string) (reference.Reference, string, error) {
	list, rest, err := apaAuthors(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	journal, rest, err := untilYear(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	ys, rest, err := field.Year(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	volume, rest, err := field.BareNumber(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	issue, rest, _ := parse.Opt(field.ParenIssue)(parse.SkipSpace(rest))

	var pages field.Pages
	if _, after, err := field.Sep(rest); err == nil {
		if pg, after2, err := field.PageRange(after); err == nil && pg.Start != nil {
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

// ACSChapter parses an ACS book chapter: semicolon-separated segments with
// an editor list marked by a bare "Ed."/"Eds.".
func ACSChapter(in string) (reference.Reference, string, error) {
	list, rest, err := apaAuthors(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok := eatPrefixFold(rest, "in ")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	bookTitle, rest, err := field.TitleSemicolon(rest)
	if err != nil || !strings.HasPrefix(rest, ";") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)

	var editors field.AuthorList
	if eds, after, err := field.AuthorsFamilyInitials(rest); err == nil {
		_, after, _ = field.SepOpt(after)
		if after2, ok := eatEdsBare(after); ok {
			editors = eds
			_, rest, _ = field.SepOpt(after2)
		}
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

// ACSBook parses an ACS book: title terminated by a semicolon, then
// "Publisher: Place, year".
func ACSBook(in string) (reference.Reference, string, error) {
	list, rest, err := apaAuthors(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitleSemicolon(rest)
	if err != nil || !strings.HasPrefix(rest, ";") {
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

// ACSWeb parses an ACS web reference: title, URL, optional parenthesised
// access note.
func ACSWeb(in string) (reference.Reference, string, error) {
	list, rest, err := apaAuthors(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	url, rest, err := field.URL(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	var ys field.YearSuffix
	rest = parse.SkipSpace(rest)
	if strings.HasPrefix(rest, "(") {
		if end := strings.IndexByte(rest, ')'); end >= 0 {
			note := rest[1:end]
			if i := strings.LastIndexAny(note, " "); i >= 0 {
				if y, after, err := field.Year(note[i+1:]); err == nil && after == "" {
					ys = y
				}
			}
			rest = rest[end+1:]
		}
	}

	ref := newRef(reference.WebPage, list, title, ys)
	ref.URL = url
	rest = eatClosing(rest)
	return ref, rest, nil
}

// eatEdsBare consumes a bare "Ed."/"Eds." editor marker without parens.
func eatEdsBare(in string) (string, bool) {
	lower := strings.ToLower(in)
	switch {
	case strings.HasPrefix(lower, "eds."):
		return in[4:], true
	case strings.HasPrefix(lower, "ed."):
		return in[3:], true
	}
	return in, false
}
