// Package intext scans prose for parenthetical author-year citations:
// "(Smith, 2020)", "(Smith & Jones, 2020a; Brown et al., 2019)". The
// identifier attached to each citation is produced by the same generator
// as bibliography parsing, so a citation and its bibliography entry agree
// on their id.
package intext

import (
	"strings"

	"github.com/refsift/refsift/internal/field"
	"github.com/refsift/refsift/internal/refid"
	"github.com/refsift/refsift/internal/reference"
)

// Citation is one author-year citation found in prose.
type Citation struct {
	ID      string             `json:"id"`
	Authors []reference.Author `json:"authors,omitempty"`
	EtAl    bool               `json:"et_al,omitempty"`
	Year    int                `json:"year"`
	Suffix  string             `json:"suffix,omitempty"`
	Raw     string             `json:"raw"`
}

// Scan returns every citation found in the text, in order of appearance.
// A parenthesised group may carry several citations separated by
// semicolons.
func Scan(text string) []Citation {
	var cites []Citation
	for i := 0; i < len(text); i++ {
		if text[i] != '(' {
			continue
		}
		end := strings.IndexByte(text[i:], ')')
		if end < 0 {
			break
		}
		group := text[i+1 : i+end]
		for _, seg := range strings.Split(group, ";") {
			if c, ok := parseCitation(strings.TrimSpace(seg)); ok {
				cites = append(cites, c)
			}
		}
		i += end
	}
	return cites
}

// parseCitation parses one "Authors[,] Year[suffix]" segment.
func parseCitation(seg string) (Citation, bool) {
	at := strings.LastIndexAny(seg, " ,")
	if at < 0 {
		return Citation{}, false
	}
	ys, rest, err := field.Year(strings.TrimSpace(seg[at+1:]))
	if err != nil || rest != "" {
		return Citation{}, false
	}
	names := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(seg[:at]), ","))
	authors, etAl, ok := parseNames(names)
	if !ok {
		return Citation{}, false
	}
	return Citation{
		ID:      refid.Generate(authors, etAl, ys.Year, ys.Suffix),
		Authors: authors,
		EtAl:    etAl,
		Year:    ys.Year,
		Suffix:  ys.Suffix,
		Raw:     seg,
	}, true
}

// parseNames parses the author part of a citation: one or two family
// names joined by "&"/"and", or one family name with "et al.".
func parseNames(names string) ([]reference.Author, bool, bool) {
	etAl := false
	if cut, ok := strings.CutSuffix(names, "et al."); ok {
		names, etAl = strings.TrimSpace(cut), true
	} else if cut, ok := strings.CutSuffix(names, "et al"); ok {
		names, etAl = strings.TrimSpace(cut), true
	}
	names = strings.TrimSuffix(names, ",")

	var parts []string
	switch {
	case strings.Contains(names, "&"):
		parts = strings.Split(names, "&")
	case strings.Contains(names, " and "):
		parts = strings.SplitN(names, " and ", 2)
	default:
		parts = []string{names}
	}
	var authors []reference.Author
	for _, part := range parts {
		family := strings.TrimSpace(part)
		if family == "" || !isFamilyName(family) {
			return nil, false, false
		}
		authors = append(authors, reference.NewPerson(family, ""))
	}
	return authors, etAl, true
}

// isFamilyName accepts one to three capitalized-or-particle words.
func isFamilyName(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	for _, word := range words {
		for _, r := range word {
			if !isNameRune(r) {
				return false
			}
		}
	}
	first := []rune(words[0])
	return first[0] >= 'A' && first[0] <= 'Z' || first[0] >= 0x00C0
}

func isNameRune(r rune) bool {
	return r == '-' || r == '\'' || r == '’' ||
		r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= 0x00C0
}
