package field

import (
	"strings"

	"github.com/refsift/refsift/internal/parse"
)

// Quote pairs recognized by TitleQuoted: straight and "smart" variants.
var quotePairs = []struct {
	open  string
	close []string
}{
	{`"`, []string{`"`, "”"}},
	{"“", []string{"”", `"`}},
	{"‘", []string{"’"}},
}

// TitlePeriod captures a title terminated by the next unescaped period.
// The period itself is not consumed. The captured text is trimmed of
// surrounding whitespace and stray trailing punctuation.
func TitlePeriod(in string) (string, string, error) {
	return titleUntil(in, '.')
}

// TitleSemicolon captures a title terminated by the next semicolon.
func TitleSemicolon(in string) (string, string, error) {
	return titleUntil(in, ';')
}

func titleUntil(in string, term byte) (string, string, error) {
	end := -1
	for i := 0; i < len(in); i++ {
		if in[i] != term {
			continue
		}
		if i > 0 && in[i-1] == '\\' {
			continue
		}
		end = i
		break
	}
	if end < 0 {
		return "", in, parse.ErrNoMatch
	}
	title := trimStray(in[:end])
	if title == "" {
		return "", in, parse.ErrNoMatch
	}
	return unescapeTitle(title), in[end:], nil
}

// TitleQuoted captures a title wrapped in straight or smart quotes,
// consuming both quote marks. A stray period, comma, or semicolon just
// inside the closing quote is trimmed.
func TitleQuoted(in string) (string, string, error) {
	for _, pair := range quotePairs {
		if !strings.HasPrefix(in, pair.open) {
			continue
		}
		body := in[len(pair.open):]
		at, closerLen := -1, 0
		for _, closer := range pair.close {
			if i := strings.Index(body, closer); i >= 0 && (at < 0 || i < at) {
				at, closerLen = i, len(closer)
			}
		}
		if at < 0 {
			return "", in, parse.ErrNoMatch
		}
		title := trimStray(body[:at])
		if title == "" {
			return "", in, parse.ErrNoMatch
		}
		return unescapeTitle(title), body[at+closerLen:], nil
	}
	return "", in, parse.ErrNoMatch
}

// unescapeTitle removes backslash escapes ("\." -> ".") left in source text.
func unescapeTitle(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
