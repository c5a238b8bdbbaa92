package field

import (
	"strconv"

	"github.com/refsift/refsift/internal/parse"
)

// Plausible publication year range. Tokens outside it are rejected, which
// also keeps volume and page numbers from being misread as years.
const (
	MinYear = 1200
	MaxYear = 2050
)

// YearSuffix is a publication year with an optional single-letter
// disambiguation suffix ("2020a") used when one author published several
// works in the same year.
type YearSuffix struct {
	Year   int
	Suffix string
}

// Year parses a four-digit year in [MinYear, MaxYear] with an optional
// trailing suffix letter. A fifth digit or a second trailing letter rejects
// the match so that longer tokens are not split.
func Year(in string) (YearSuffix, string, error) {
	digits, rest, err := parse.Digits(4, 4)(in)
	if err != nil {
		return YearSuffix{}, in, err
	}
	if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		return YearSuffix{}, in, parse.ErrNoMatch
	}
	year, err := strconv.Atoi(digits)
	if err != nil || year < MinYear || year > MaxYear {
		return YearSuffix{}, in, parse.ErrNoMatch
	}
	ys := YearSuffix{Year: year}
	if len(rest) > 0 && rest[0] >= 'a' && rest[0] <= 'z' {
		if len(rest) > 1 && isLetterByte(rest[1]) {
			// "2020ab" is not a suffixed year.
			return ys, rest, nil
		}
		ys.Suffix = rest[:1]
		rest = rest[1:]
	}
	return ys, rest, nil
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
