package field

import (
	"strings"

	"github.com/refsift/refsift/internal/parse"
)

var volumeKeywords = []string{"volume", "vol.", "vol"}
var issueKeywords = []string{"number", "issue", "no.", "no", "num."}

// VolumeKeyword parses a keyword-prefixed volume: "vol. 15", "Volume 15".
func VolumeKeyword(in string) (string, string, error) {
	return keywordNumber(in, volumeKeywords)
}

// IssueKeyword parses a keyword-prefixed issue: "no. 3", "Number 3".
func IssueKeyword(in string) (string, string, error) {
	return keywordNumber(in, issueKeywords)
}

// ParenIssue parses a parenthesised issue number: "(3)", "(S1)".
func ParenIssue(in string) (string, string, error) {
	if !strings.HasPrefix(in, "(") {
		return "", in, parse.ErrNoMatch
	}
	token, rest, err := alnumToken(in[1:])
	if err != nil || !strings.HasPrefix(rest, ")") {
		return "", in, parse.ErrNoMatch
	}
	return token, rest[1:], nil
}

// BareNumber parses a bare run of digits, as used for volumes in styles
// that omit the "vol." keyword.
func BareNumber(in string) (string, string, error) {
	return parse.Digits(1, 0)(in)
}

func keywordNumber(in string, keywords []string) (string, string, error) {
	lower := strings.ToLower(in)
	for _, kw := range keywords {
		if !strings.HasPrefix(lower, kw) {
			continue
		}
		after := in[len(kw):]
		if !strings.HasSuffix(kw, ".") {
			// Bare keywords need a space boundary so "no" does not match
			// inside an ordinary word.
			if after == "" || (after[0] != ' ' && after[0] != '\t') {
				continue
			}
		}
		rest := parse.SkipSpace(after)
		token, rest, err := alnumToken(rest)
		if err != nil {
			continue
		}
		return token, rest, nil
	}
	return "", in, parse.ErrNoMatch
}
