// Package export serializes references to BibTeX.
package export

import (
	"fmt"
	"strings"

	"github.com/refsift/refsift/internal/reference"
)

// ToBibTeX converts a reference to a BibTeX entry.
func ToBibTeX(ref reference.Reference) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType(ref), ref.ID))

	if len(ref.Authors) > 0 {
		writeField(&b, "author", formatNames(ref.Authors))
	}
	if title := ref.Title.String(); title != "" {
		writeField(&b, "title", escapeLatex(title))
	}

	if c := ref.IsPartOf; c != nil {
		field := "journal"
		if ref.Type == reference.Chapter {
			field = "booktitle"
		}
		if title := c.Title.String(); title != "" {
			writeField(&b, field, escapeLatex(title))
		}
		if len(c.Editors) > 0 {
			writeField(&b, "editor", formatNames(c.Editors))
		}
		if c.Volume != "" {
			writeField(&b, "volume", c.Volume)
		}
		if c.Issue != "" {
			writeField(&b, "number", c.Issue)
		}
	}

	if pages := formatPages(ref); pages != "" {
		writeField(&b, "pages", pages)
	}

	if pub := publisher(ref); pub != nil {
		writeField(&b, "publisher", escapeLatex(pub.Name))
		if pub.Address != "" {
			writeField(&b, "address", escapeLatex(pub.Address))
		}
	}

	if year := ref.Year(); year != 0 {
		writeField(&b, "year", fmt.Sprintf("%d", year))
	}
	if ref.DOI != "" {
		writeField(&b, "doi", ref.DOI)
	}
	if ref.URL != "" {
		writeField(&b, "url", ref.URL)
	}
	if ref.Type == reference.Untyped && ref.Text != "" {
		writeField(&b, "note", escapeLatex(ref.Text))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple references to BibTeX entries separated
// by blank lines.
func ToBibTeXList(refs []reference.Reference) string {
	var entries []string
	for _, ref := range refs {
		entries = append(entries, ToBibTeX(ref))
	}
	return strings.Join(entries, "\n")
}

func writeField(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "  %s = {%s},\n", name, value)
}

// entryType maps a work type onto a BibTeX entry type. Chapters inside
// proceedings-like containers become @inproceedings.
func entryType(ref reference.Reference) string {
	switch ref.Type {
	case reference.Article:
		return "article"
	case reference.Book:
		return "book"
	case reference.Chapter:
		if ref.IsPartOf != nil {
			container := strings.ToLower(ref.IsPartOf.Title.String())
			if strings.Contains(container, "proceedings") ||
				strings.Contains(container, "conference") ||
				strings.Contains(container, "workshop") ||
				strings.Contains(container, "symposium") {
				return "inproceedings"
			}
		}
		return "incollection"
	default:
		return "misc"
	}
}

func publisher(ref reference.Reference) *reference.Author {
	if ref.Publisher != nil {
		return ref.Publisher
	}
	if ref.IsPartOf != nil {
		return ref.IsPartOf.Publisher
	}
	return nil
}

func formatPages(ref reference.Reference) string {
	if ref.Pagination != "" {
		return ref.Pagination
	}
	if ref.PageStart == nil {
		return ""
	}
	if ref.PageEnd != nil {
		return ref.PageStart.String() + "--" + ref.PageEnd.String()
	}
	return ref.PageStart.String()
}

// formatNames formats contributors in BibTeX style:
// "Family, Given and Family, Given". Organizations are braced so BibTeX
// does not split them on the spaces.
func formatNames(authors []reference.Author) string {
	var formatted []string
	for _, a := range authors {
		switch {
		case a.Kind == reference.Organization:
			formatted = append(formatted, "{"+escapeLatex(a.Name)+"}")
		case a.Given != "":
			formatted = append(formatted, escapeLatex(a.Family)+", "+escapeLatex(a.Given))
		default:
			formatted = append(formatted, escapeLatex(a.Family))
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
