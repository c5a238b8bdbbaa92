// Package bib is the top-level bibliography-entry parser. It strips a
// leading numbering marker, tries every style grammar in a fixed
// category-then-precedence order, applies the partial-match acceptance
// policy, and falls back to heuristic DOI/URL/text extraction when no
// grammar matches. ParseReference is total: it never fails.
package bib

import (
	"strings"

	"github.com/refsift/refsift/internal/fallback"
	"github.com/refsift/refsift/internal/parse"
	"github.com/refsift/refsift/internal/reference"
	"github.com/refsift/refsift/internal/style"
)

// Partial-match acceptance thresholds. A structured parse that leaves
// unconsumed input is still accepted when the leftover is below either
// bound. Empirically tuned; kept as constants rather than re-derived.
const (
	// PartialMaxRemaining accepts a partial match with fewer than this
	// many alphanumeric characters left over.
	PartialMaxRemaining = 3
	// PartialMaxPercent accepts a partial match whose leftover is below
	// this percentage of the input's alphanumeric characters.
	PartialMaxPercent = 10
)

// Policy holds the partial-match acceptance bounds. The zero value is
// not useful; start from DefaultPolicy.
type Policy struct {
	MaxRemaining int
	MaxPercent   int
}

// DefaultPolicy is the tuned acceptance policy.
var DefaultPolicy = Policy{MaxRemaining: PartialMaxRemaining, MaxPercent: PartialMaxPercent}

// Match is a structured parse result together with the shape that
// produced it and any unconsumed input.
type Match struct {
	Reference reference.Reference
	Shape     string
	Leftover  string
}

type attempt struct {
	shape   string
	grammar style.Grammar
}

// Shape tables, one per work-type category. The dispatcher walks the
// categories in order (chapter and conference shapes carry "In"/"In:"
// keywords and must run before the bare-title shapes) and the styles
// within a category by precedence, most syntactically constrained first.
var (
	chapterShapes = []attempt{
		{"ieee/conference", style.IEEEConference},
		{"vancouver/chapter", style.VancouverChapter},
		{"acs/chapter", style.ACSChapter},
		{"mla/chapter", style.MLAChapter},
		{"apa/chapter", style.APAChapter},
		{"lncs/chapter", style.LNCSChapter},
		{"chicago/chapter", style.ChicagoChapter},
	}
	articleShapes = []attempt{
		{"ieee/article", style.IEEEArticle},
		{"vancouver/article", style.VancouverArticle},
		{"acs/article", style.ACSArticle},
		{"mla/article", style.MLAArticle},
		{"apa/article", style.APAArticle},
		{"lncs/article", style.LNCSArticle},
		{"chicago/article", style.ChicagoArticle},
		{"aas/article", style.AASArticle},
	}
	webShapes = []attempt{
		{"ieee/web", style.IEEEWeb},
		{"vancouver/web", style.VancouverWeb},
		{"acs/web", style.ACSWeb},
		{"mla/web", style.MLAWeb},
		{"apa/web", style.APAWeb},
		{"chicago/web", style.ChicagoWeb},
	}
	bookShapes = []attempt{
		{"ieee/book", style.IEEEBook},
		{"vancouver/book", style.VancouverBook},
		{"acs/book", style.ACSBook},
		{"mla/book", style.MLABook},
		{"apa/book", style.APABook},
		{"lncs/book", style.LNCSBook},
		{"chicago/book", style.ChicagoBook},
		{"aas/book", style.AASBook},
	}

	categories = [][]attempt{chapterShapes, articleShapes, webShapes, bookShapes}
)

// ParseReference parses one bibliography entry. It never fails: when no
// style grammar produces an acceptable match, the fallback extractor
// runs, and its worst case is a text-only Reference.
func ParseReference(text string) reference.Reference {
	return ParseReferenceWith(text, DefaultPolicy)
}

// ParseReferenceWith is ParseReference under a caller-supplied
// acceptance policy.
func ParseReferenceWith(text string, p Policy) reference.Reference {
	entry := stripNumbering(strings.TrimSpace(text))
	if m, ok := DispatchWith(entry, p); ok {
		return m.Reference
	}
	return fallback.Extract(entry)
}

// Dispatch tries every style grammar against the entry and reports the
// best structured match, if any is acceptable under the partial-match
// policy. The entry must already have its numbering marker stripped.
func Dispatch(entry string) (Match, bool) {
	return DispatchWith(entry, DefaultPolicy)
}

// DispatchWith is Dispatch under a caller-supplied acceptance policy.
func DispatchWith(entry string, p Policy) (Match, bool) {
	total := parse.CountAlnum(entry)
	if total == 0 {
		return Match{}, false
	}

	best := Match{}
	bestRemaining := -1
	for _, category := range categories {
		for _, a := range category {
			ref, rest, err := a.grammar(entry)
			if err != nil {
				continue
			}
			remaining := parse.CountAlnum(rest)
			if remaining == 0 {
				return Match{Reference: ref, Shape: a.shape}, true
			}
			if bestRemaining < 0 || remaining < bestRemaining {
				best = Match{Reference: ref, Shape: a.shape, Leftover: rest}
				bestRemaining = remaining
			}
		}
	}
	if bestRemaining < 0 {
		return Match{}, false
	}
	if bestRemaining < p.MaxRemaining || bestRemaining*100/total < p.MaxPercent {
		return best, true
	}
	return Match{}, false
}

// stripNumbering drops a leading "[3]", "3.", or "3 " list marker. The
// bare-digits forms are capped at three digits so a year starting the
// entry is never mistaken for numbering.
func stripNumbering(s string) string {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end > 1 && end <= 5 && allDigits(s[1:end]) {
			return strings.TrimSpace(s[end+1:])
		}
		return s
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i <= 3 && i < len(s) && (s[i] == '.' || s[i] == ' ') {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
