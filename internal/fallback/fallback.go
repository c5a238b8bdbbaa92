// Package fallback implements the last-resort extractor used when no style
// grammar matches a bibliography entry. It scans for a DOI or URL anywhere
// in the text and otherwise keeps the entry as cleaned plain text. It never
// fails: the worst case is a text-only Reference.
package fallback

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/reference"
)

// Extract builds a Reference from unstructured entry text.
//
// A DOI found anywhere in the text populates DOI, with any preceding text
// kept as cleaned Text. A non-DOI URL does the same and marks the work as a
// web page. With neither, the whole input becomes cleaned Text on an
// untyped Reference.
func Extract(text string) reference.Reference {
	before, loc, rest, found := scanLocator(text)
	if !found {
		return reference.Reference{Text: CleanText(text)}
	}

	var ref reference.Reference
	if loc.DOI != "" {
		ref.DOI = loc.DOI
	} else {
		ref.Type = reference.WebPage
		ref.URL = loc.URL
	}
	// Keep surrounding prose, if any, as fallback text.
	prose := strings.TrimSpace(before + " " + rest)
	if cleaned := CleanText(prose); cleaned != "" {
		ref.Text = cleaned
	}
	return ref
}

// scanLocator finds the first DOI or URL at any offset in the text.
func scanLocator(text string) (before string, loc field.Locator, rest string, found bool) {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '1', 'h', 'd', 'D', 'w':
			l, remainder, err := field.DOIOrURL(text[i:])
			if err == nil {
				return text[:i], l, remainder, true
			}
		}
	}
	return "", field.Locator{}, "", false
}

// CleanText normalizes fallback text: trims whitespace, strips leading and
// trailing separator punctuation, and collapses internal whitespace runs to
// single spaces. It is idempotent.
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for {
		t := strings.Trim(s, "-–—:;,. \t\n\r")
		t = strings.TrimPrefix(t, "(")
		t = strings.TrimSpace(t)
		if t == s {
			return s
		}
		s = t
	}
}
