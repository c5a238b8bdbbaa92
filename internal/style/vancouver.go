package style

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// Vancouver (biomedical) style: undotted initials after the family name,
// unabbreviated separators "year;volume(issue):pages", "In:" for chapters.
//
//	Smith JA, Jones B. Title of article. J Abbrev Med. 2020;5(2):100-10.
//	doi: 10.1000/xyz

// Vancouver tries all Vancouver work-type shapes, most specific first.
var Vancouver = parse.Alt(VancouverChapter, VancouverArticle, VancouverWeb, VancouverBook)

// VancouverArticle parses a Vancouver journal article.
func VancouverArticle(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsVancouver(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	journal, rest, err := untilAny(rest, ".")
	if err != nil || !strings.HasPrefix(rest, ".") {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	ys, rest, err := field.Year(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	var volume, issue string
	var pages field.Pages
	if strings.HasPrefix(rest, ";") {
		if v, after, err := field.BareNumber(parse.SkipSpace(rest[1:])); err == nil {
			volume = v
			rest = after
		}
	}
	if n, after, err := field.ParenIssue(rest); err == nil {
		issue = n
		rest = after
	}
	if strings.HasPrefix(rest, ":") {
		if pg, after, err := field.PageRange(parse.SkipSpace(rest[1:])); err == nil && pg.Start != nil {
			pages = pg
			rest = after
		}
	}

	ref := newRef(reference.Article, list, title, ys)
	ref.IsPartOf = container(journal, volume, issue)
	applyPages(&ref, pages)
	rest = trailingLocator(&ref, rest)
	rest = eatClosing(rest)
	return ref, rest, nil
}

// VancouverChapter parses a Vancouver book chapter: "In: Editors, editor(s).
// Book title. Place: Publisher; year. p. pages."
func VancouverChapter(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsVancouver(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := field.TitlePeriod(rest)
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	_, rest, _ = field.SepOpt(rest)
	rest, ok := eatPrefixFold(rest, "in:")
	if !ok {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	editors, rest, _ := parse.Opt(field.AuthorsVancouver)(rest)
	_, rest, _ = field.SepOpt(rest)
	if after, ok := eatPrefixFold(rest, "editors"); ok {
		rest = after
	} else if after, ok := eatPrefixFold(rest, "editor"); ok {
		rest = after
	}
	_, rest, _ = field.SepOpt(rest)
	bookTitle, rest, err := field.TitlePeriod(rest)
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

// VancouverBook parses a Vancouver book: title, "Place: Publisher; year".
func VancouverBook(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsVancouver(in)
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

// VancouverWeb parses a Vancouver web page: "[Internet]" and "[cited ...]"
// bracket notes, "Available from:" before the URL.
func VancouverWeb(in string) (reference.Reference, string, error) {
	list, rest, err := field.AuthorsVancouver(in)
	if err != nil {
		return reference.Reference{}, in, err
	}
	_, rest, _ = field.SepOpt(rest)
	title, rest, err := untilAny(rest, "[.")
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}
	title = strings.TrimRight(title, " ")

	var ys field.YearSuffix
	for {
		if after, ok := eatBracketGroup(parse.SkipSpace(rest)); ok {
			rest = after
			continue
		}
		_, after, err := field.Sep(rest)
		if err == nil {
			rest = after
			continue
		}
		if ys.Year == 0 {
			if y, after, err := field.Year(rest); err == nil {
				ys = y
				rest = after
				continue
			}
		}
		break
	}
	if after, ok := eatPrefixFold(rest, "available from:"); ok {
		rest = after
	}
	url, rest, err := field.URL(parse.SkipSpace(rest))
	if err != nil {
		return reference.Reference{}, in, parse.ErrNoMatch
	}

	ref := newRef(reference.WebPage, list, title, ys)
	ref.URL = url
	rest = eatClosing(rest)
	return ref, rest, nil
}

// eatBracketGroup consumes one "[...]" note.
func eatBracketGroup(in string) (string, bool) {
	if !strings.HasPrefix(in, "[") {
		return in, false
	}
	end := strings.IndexByte(in, ']')
	if end < 0 {
		return in, false
	}
	return in[end+1:], true
}
