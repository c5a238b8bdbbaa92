// Package refid generates deterministic citation identifiers from authors
// and publication year.
//
// The same function is used by the bibliography parser and the in-text
// citation scanner, so a bibliography entry and an in-text "(Author, Year)"
// citation for the same work always produce the same identifier.
package refid

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/refsift/refsift/internal/reference"
)

// Generate builds the identifier for a work.
//
//	no authors              -> "unknown"
//	one author              -> "smith"
//	two authors             -> "smith-and-jones"
//	three or more / et al.  -> "smith-et-al"
//
// followed by "-<year>" ("-unknown" when the year is missing) and the raw
// disambiguation suffix letter, if any, with no separator before it.
func Generate(authors []reference.Author, etAl bool, year int, suffix string) string {
	var b strings.Builder
	switch {
	case len(authors) == 0:
		b.WriteString("unknown")
	case len(authors) >= 3 || etAl:
		b.WriteString(slug(authors[0].SortName()))
		b.WriteString("-et-al")
	case len(authors) == 2:
		b.WriteString(slug(authors[0].SortName()))
		b.WriteString("-and-")
		b.WriteString(slug(authors[1].SortName()))
	default:
		b.WriteString(slug(authors[0].SortName()))
	}
	b.WriteByte('-')
	if year > 0 {
		b.WriteString(strconv.Itoa(year))
	} else {
		b.WriteString("unknown")
	}
	b.WriteString(suffix)
	return b.String()
}

// slug lower-cases a name and turns spaces and apostrophes into hyphens.
// Existing hyphens in multi-word family names are kept.
func slug(name string) string {
	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			prevHyphen = false
		case r == ' ' || r == '\'' || r == '’' || r == '-':
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "unknown"
	}
	return out
}
