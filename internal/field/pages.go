package field

import (
	"strings"
	"unicode"

	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
)

// Pages is the result of the page parser: a start/end pair, a lone start
// page, or an opaque pagination string for tokens that are not pages in the
// start/end sense (Roman numerals, article numbers).
type Pages struct {
	Start      *reference.Page
	End        *reference.Page
	Pagination string
}

// Dash characters accepted inside page ranges.
var pageDashes = []string{"-", "–", "—", "−"}

// pagePrefixes are optional markers before page numbers.
var pagePrefixes = []string{"pp.", "pp", "p.", "p "}

// PageRange parses pages, trying in order: a dashed range of two
// alphanumeric tokens, a single token containing a digit (the start page),
// and finally any alphanumeric token as opaque pagination. An optional
// "p."/"pp." prefix is accepted before each form.
func PageRange(in string) (Pages, string, error) {
	rest := skipPagePrefix(in)

	if pages, after, err := dashedRange(rest); err == nil {
		return pages, after, nil
	}

	token, after, err := alnumToken(rest)
	if err != nil {
		return Pages{}, in, parse.ErrNoMatch
	}
	if strings.ContainsFunc(token, unicode.IsDigit) {
		start := reference.ParsePage(token)
		return Pages{Start: &start}, after, nil
	}
	return Pages{Pagination: token}, after, nil
}

// PagesPrefixed parses pages introduced by an explicit "p."/"pp." marker.
// Styles that place pages next to bare numbers (IEEE, MLA) need the marker
// so a year or volume is not swallowed as a page.
func PagesPrefixed(in string) (Pages, string, error) {
	rest := skipPagePrefix(in)
	if rest == in {
		return Pages{}, in, parse.ErrNoMatch
	}
	if pages, after, err := dashedRange(rest); err == nil {
		return pages, after, nil
	}
	token, after, err := alnumToken(rest)
	if err != nil || !strings.ContainsFunc(token, unicode.IsDigit) {
		return Pages{}, in, parse.ErrNoMatch
	}
	start := reference.ParsePage(token)
	return Pages{Start: &start}, after, nil
}

// dashedRange parses "45-67", "45 – 67", "S123-S130". Both tokens and the
// dash must be present for the range to match.
func dashedRange(in string) (Pages, string, error) {
	first, rest, err := alnumToken(in)
	if err != nil {
		return Pages{}, in, err
	}
	rest = parse.SkipSpace(rest)
	dash, rest, err := parse.AnyLit(pageDashes...)(rest)
	if err != nil || dash == "" {
		return Pages{}, in, parse.ErrNoMatch
	}
	rest = parse.SkipSpace(rest)
	second, rest, err := alnumToken(rest)
	if err != nil {
		return Pages{}, in, parse.ErrNoMatch
	}
	start := reference.ParsePage(first)
	end := reference.ParsePage(second)
	return Pages{Start: &start, End: &end}, rest, nil
}

// alnumToken consumes a run of letters and digits.
func alnumToken(in string) (string, string, error) {
	return parse.TakeWhile1(parse.IsAlnum)(in)
}

// skipPagePrefix drops a leading "p."/"pp." marker and following spaces.
func skipPagePrefix(in string) string {
	lower := strings.ToLower(in)
	for _, prefix := range pagePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return parse.SkipSpace(in[len(prefix):])
		}
	}
	return in
}
