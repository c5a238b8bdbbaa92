// Package pdf extracts bibliography text from PDF files.
package pdf

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts all text from the first N pages of a PDF.
// maxPages <= 0 means the whole document.
func ExtractText(filePath string, maxPages int) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return ExtractTextReader(f, info.Size(), maxPages)
}

// ExtractTextReader extracts text from a PDF reader.
func ExtractTextReader(r io.ReaderAt, size int64, maxPages int) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", err
	}
	return readPages(pdfReader, maxPages), nil
}

func readPages(r *pdf.Reader, maxPages int) string {
	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String()
}

// headingPattern matches a references heading on a line of its own,
// optionally numbered ("7 References", "VII. Bibliography").
var headingPattern = regexp.MustCompile(`(?mi)^\s*(?:[0-9ivx]+\.?\s+)?(references|bibliography|works cited|literature cited)\s*$`)

// ReferencesSection returns the text after the last references heading.
// Papers can mention "References" mid-text, so the last heading wins.
// Returns the whole text when no heading is found.
func ReferencesSection(text string) string {
	locs := headingPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	return text[locs[len(locs)-1][1]:]
}
