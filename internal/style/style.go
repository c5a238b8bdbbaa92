// Package style implements the eight citation-style grammars: IEEE, APA,
// MLA, Chicago, ACS, Vancouver, LNCS (Springer proceedings), and the AAS
// astrophysics-journal style.
//
// Each grammar composes the primitives from internal/field with a lenient
// separator, per work type. The per-style alternation orders work types
// most-specific-first (a chapter carries an "In"/"In:" keyword and must be
// tried before the bare-title book shape, or it would be mis-parsed as a
// book). Grammars consume as much input as they can and leave the rest to
// the dispatcher, which decides whether a partial match is acceptable.
package style

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/refid"
	"github.com/refsift/refsift/internal/reference"
)

// Grammar parses one complete reference shape.
type Grammar = parse.Parser[reference.Reference]

// newRef assembles the common parts of a Reference: work type, authors,
// title, date, and the deterministic identifier.
func newRef(typ reference.WorkType, list field.AuthorList, title string, ys field.YearSuffix) reference.Reference {
	ref := reference.Reference{
		Type:    typ,
		Authors: list.Authors,
		Title:   reference.Plain(title),
	}
	if ys.Year > 0 {
		ref.Date = &reference.Date{Year: ys.Year}
	}
	ref.ID = refid.Generate(list.Authors, list.EtAl, ys.Year, ys.Suffix)
	return ref
}

// container builds the nested is-part-of Reference for container-bearing
// work types.
func container(title, volume, issue string) *reference.Reference {
	if title == "" {
		return nil
	}
	return &reference.Reference{
		Title:  reference.Plain(title),
		Volume: volume,
		Issue:  issue,
	}
}

// applyPages copies a page-parser result onto a Reference.
func applyPages(ref *reference.Reference, pages field.Pages) {
	ref.PageStart = pages.Start
	ref.PageEnd = pages.End
	ref.Pagination = pages.Pagination
}

// applyLocator copies a DOI-or-URL result onto a Reference.
func applyLocator(ref *reference.Reference, loc field.Locator) {
	ref.DOI = loc.DOI
	ref.URL = loc.URL
}

// trailingLocator consumes an optional separator followed by an optional
// DOI or URL at the end of an entry, plus a trailing period.
func trailingLocator(ref *reference.Reference, in string) string {
	_, rest, _ := field.SepOpt(in)
	if loc, after, err := field.DOIOrURL(rest); err == nil {
		applyLocator(ref, loc)
		rest = after
	} else {
		return in
	}
	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
	}
	return rest
}

// parenYear parses "(2020)" or "(2020a)".
func parenYear(in string) (field.YearSuffix, string, error) {
	if !strings.HasPrefix(in, "(") {
		return field.YearSuffix{}, in, parse.ErrNoMatch
	}
	ys, rest, err := field.Year(in[1:])
	if err != nil || !strings.HasPrefix(rest, ")") {
		return field.YearSuffix{}, in, parse.ErrNoMatch
	}
	return ys, rest[1:], nil
}

// untilAny captures text up to the first occurrence of any terminator
// byte, requiring at least one non-space character. The terminator is not
// consumed.
func untilAny(in string, terminators string) (string, string, error) {
	end := strings.IndexAny(in, terminators)
	if end < 0 {
		end = len(in)
	}
	segment := strings.TrimSpace(in[:end])
	if segment == "" {
		return "", in, parse.ErrNoMatch
	}
	return segment, in[end:], nil
}

// titleWords captures a run of words (letters, digits, hyphens, and
// apostrophes separated by spaces) that stops before digits, punctuation
// terminators, or a parenthesis. Used for container titles that are
// followed by bare volume numbers.
func titleWords(in string) (string, string, error) {
	rest := in
	var words []string
	for {
		word, after, err := wordToken(rest)
		if err != nil {
			break
		}
		words = append(words, word)
		next := parse.SkipSpace(after)
		rest = after
		if next == after || next == "" {
			break
		}
		r, _ := utf8.DecodeRuneInString(next)
		if !unicode.IsLetter(r) {
			break
		}
		rest = next
	}
	if len(words) == 0 {
		return "", in, parse.ErrNoMatch
	}
	return strings.Join(words, " "), rest, nil
}

func wordToken(in string) (string, string, error) {
	r, _ := utf8.DecodeRuneInString(in)
	if !unicode.IsLetter(r) {
		return "", in, parse.ErrNoMatch
	}
	return parse.TakeWhile1(func(r rune) bool {
		return unicode.IsLetter(r) || r == '-' || r == '\'' || r == '’' || r == '&'
	})(in)
}

// untilYear captures text up to a standalone four-digit year token,
// without consuming the year. Needed for journal abbreviations that
// contain internal periods ("J. Am. Chem. Soc.").
func untilYear(in string) (string, string, error) {
	for i := 0; i < len(in); i++ {
		c := in[i]
		if c < '1' || c > '9' {
			continue
		}
		if i > 0 && parse.IsAlnum(rune(in[i-1])) {
			continue
		}
		if _, _, err := field.Year(in[i:]); err == nil {
			// Keep a trailing period: it may belong to an abbreviation
			// ("J. Am. Chem. Soc."). Strip other separator punctuation.
			segment := strings.TrimSpace(in[:i])
			segment = strings.TrimRight(segment, ",;: ")
			if segment == "" {
				return "", in, parse.ErrNoMatch
			}
			return segment, in[i:], nil
		}
	}
	return "", in, parse.ErrNoMatch
}

// eatPrefixFold consumes a case-insensitive literal and following spaces.
func eatPrefixFold(in, lit string) (string, bool) {
	if len(in) >= len(lit) && strings.EqualFold(in[:len(lit)], lit) {
		return parse.SkipSpace(in[len(lit):]), true
	}
	return in, false
}
