package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// IEEE style: initials-first authors, quoted titles, "vol."/"no."/"pp."
// keywords, year near the end.
//
//	J. A. Smith and B. Jones, "Deep learning for X," IEEE Trans. Neural
//	Netw., vol. 5, no. 2, pp. 100-110, 2020, doi: 10.1234/abc.

// IEEE tries all IEEE work-type shapes, most specific first.
var IEEE = parse.Alt(IEEEConference, IEEEArticle, IEEEWeb, IEEEBook)

// IEEEArticle parses an IEEE journal article.
func IEEEArticle(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsInitialsFirst(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
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
	var pages field.Pages
	_, rest, _ = field.SepOpt(rest)
	if v, after, err := field.VolumeKeyword(rest); err == nil {
		volume = v
		_, rest, _ = field.SepOpt(after)
	}
	if n, after, err := field.IssueKeyword(rest); err == nil {
		issue = n
		_, rest, _ = field.SepOpt(after)
	}
	if pg, after, err := field.PagesPrefixed(rest); err == nil {
		pages = pg
		_, rest, _ = field.SepOpt(after)
	}
	ys, rest, err := field.Year(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.Article, list, title, ys)
	ref.IsPartOf = container(journal, volume, issue)
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// IEEEConference parses an IEEE conference paper: the proceedings name
// follows an "in" keyword after the quoted title.
func IEEEConference(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsInitialsFirst(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitleQuoted(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok := eatPrefixFold(rest, "in ")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	proceedings, rest, err := untilAny(rest, ",")
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	var pages field.Pages
	var ys field.YearSuffix
	yearSeen := false
	_, rest, _ = field.SepOpt(rest)
	if y, after, err := field.Year(rest); err == nil {
		ys, yearSeen = y, true
		_, rest, _ = field.SepOpt(after)
	}
	if pg, after, err := field.PagesPrefixed(rest); err == nil {
		pages = pg
		rest = after
	}
	if !yearSeen {
		_, rest, _ = field.SepOpt(rest)
		if y, after, err := field.Year(rest); err == nil {
			ys = y
			rest = after
		}
	}

	ref := newRef(reference.Article, list, title, ys)
	ref.IsPartOf = container(proceedings, "", "")
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// IEEEBook parses an IEEE book: unquoted title, "Place: Publisher", year.
func IEEEBook(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsInitialsFirst(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
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

// IEEEWeb parses an IEEE online reference: quoted title, optional site and
// year, "[Online]. Available:" marker, URL.
func IEEEWeb(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsInitialsFirst(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitleQuoted(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)

	var site string
	if !strings.HasPrefix(rest, "[") && !strings.HasPrefix(rest, "http") {
		if s, after, err := untilAny(rest, ",.["); err == nil && !strings.Contains(s, "http") {
			if _, _, yerr := field.Year(s); yerr != nil {
				site = s
				_, rest, _ = field.SepOpt(after)
			}
		}
	}
	var ys field.YearSuffix
	if y, after, err := field.Year(rest); err == nil {
		ys = y
		_, rest, _ = field.SepOpt(after)
	}
	if after, ok := eatPrefixFold(rest, "[online]"); ok {
		_, rest, _ = field.SepOpt(after)
	}
	if after, ok := eatPrefixFold(rest, "available:"); ok {
		rest = after
	} else if after, ok := eatPrefixFold(rest, "available from:"); ok {
		rest = after
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

// eatClosing consumes a trailing sentence period and whitespace.
func eatClosing(in string) string {
	rest := parse.SkipSpace(in)
	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
	}
	return parse.SkipSpace(rest)
}
