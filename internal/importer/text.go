// Package importer turns external bibliography formats into references.
package importer

import (
	"regexp"
	"strings"

	"github.com/refsift/refsift/internal/bib"
	"github.com/refsift/refsift/internal/reference"
	"github.com/refsift/refsift/internal/refid"
)

// entryStart matches the beginning of a numbered bibliography entry.
var entryStart = regexp.MustCompile(`^(\[\d{1,4}\]|\d{1,3}\.)\s`)

// ParseText parses a plain-text bibliography into references, one per entry.
// Parsing is total: entries no grammar recognizes come back as text-only
// references, never as errors.
func ParseText(data []byte) []reference.Reference {
	entries := SplitBibliography(string(data))

	refs := make([]reference.Reference, 0, len(entries))
	for _, entry := range entries {
		ref := bib.ParseReference(entry)
		if ref.ID == "" {
			ref.ID = refid.Generate(ref.Authors, false, ref.Year(), "")
		}
		refs = append(refs, ref)
	}
	return refs
}

// SplitBibliography splits bibliography text into individual entries.
//
// Numbered bibliographies split at the entry markers, with wrapped lines
// joined. Unnumbered text splits on blank lines when present, otherwise one
// line is one entry.
func SplitBibliography(text string) []string {
	lines := strings.Split(text, "\n")

	numbered := false
	blank := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blank = true
		} else if entryStart.MatchString(trimmed) {
			numbered = true
		}
	}

	var entries []string
	var current []string
	flush := func() {
		entry := strings.TrimSpace(strings.Join(current, " "))
		if entry != "" {
			entries = append(entries, entry)
		}
		current = current[:0]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case numbered && entryStart.MatchString(line):
			flush()
			current = append(current, line)
		case !numbered && !blank:
			// One entry per line
			entries = append(entries, line)
		default:
			current = append(current, line)
		}
	}
	flush()

	return entries
}
