// Package field implements the primitive sub-parsers for individual
// bibliographic fields: authors, dates, DOIs and URLs, pages, titles,
// volume/issue numbers, and publisher/place pairs.
//
// Every parser consumes a prefix of the remaining input and returns the
// typed value plus the unconsumed remainder; on failure it consumes nothing
// and reports parse.ErrNoMatch. Style grammars compose these primitives with
// lenient separators so punctuation drift in scraped text does not break an
// otherwise well-formed entry.
package field

import (
	"strings"

	"github.com/refsift/refsift/internal/parse"
)

// Sep matches one lenient separator: optional whitespace, at most one of
// '.', ',', ';', ':', and optional trailing whitespace. Bare whitespace also
// counts. It must consume at least one character.
func Sep(in string) (string, string, error) {
	rest := parse.SkipSpace(in)
	if len(rest) > 0 {
		switch rest[0] {
		case '.', ',', ';', ':':
			rest = parse.SkipSpace(rest[1:])
			return in[:len(in)-len(rest)], rest, nil
		}
	}
	if len(rest) == len(in) {
		return "", in, parse.ErrNoMatch
	}
	return in[:len(in)-len(rest)], rest, nil
}

// SepOpt is Sep made optional; it never fails.
func SepOpt(in string) (string, string, error) {
	consumed, rest, err := Sep(in)
	if err != nil {
		return "", in, nil
	}
	return consumed, rest, nil
}

// trimStray removes a trailing stray period, comma, or semicolon plus
// surrounding whitespace from a captured field value.
func trimStray(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;")
	return strings.TrimSpace(s)
}
