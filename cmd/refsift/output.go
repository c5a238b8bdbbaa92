package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/refsift/refsift/internal/reference"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search results

	// Title truncation lengths by context
	ImportTitleMaxLen = 60 // Used in import command output
	SearchTitleMaxLen = 70 // Used in search result summaries
	ListTitleMaxLen   = 50 // Used in list command output

	// Text wrapping widths
	TextWrapWidth = 60 // Standard text wrap width
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent)
}

// formatAuthorShort formats an author as "Family G" (abbreviated given name).
// Organizations keep their full name.
func formatAuthorShort(a reference.Author) string {
	if a.Kind == reference.Organization {
		return a.Name
	}
	if a.Given != "" {
		return a.Family + " " + string(a.Given[0])
	}
	return a.Family
}

// formatAuthorsShort formats authors with abbreviation and "et al." for more than maxCount.
func formatAuthorsShort(authors []reference.Author, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, formatAuthorShort(a))
	}
	return strings.Join(names, ", ")
}

// formatAuthorsFull formats all authors with their display names.
func formatAuthorsFull(authors []reference.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.DisplayName()
	}
	return strings.Join(names, ", ")
}

// formatPages renders the page fields of a reference, or "".
func formatPages(ref reference.Reference) string {
	if ref.Pagination != "" {
		return ref.Pagination
	}
	if ref.PageStart == nil {
		return ""
	}
	if ref.PageEnd != nil {
		return ref.PageStart.String() + "-" + ref.PageEnd.String()
	}
	return ref.PageStart.String()
}

// printRefSummary prints a numbered one-paragraph summary of a reference.
func printRefSummary(num int, ref reference.Reference) {
	fmt.Printf("[%d] %s\n", num, ref.ID)
	fmt.Printf("    %s\n", truncateString(ref.Title.String(), SearchTitleMaxLen))

	if len(ref.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthorsShort(ref.Authors, 3))
	}

	container := ""
	if ref.IsPartOf != nil {
		container = ref.IsPartOf.Title.String()
	}
	if container != "" {
		fmt.Printf("    %s (%d)\n", container, ref.Year())
	} else {
		fmt.Printf("    (%d)\n", ref.Year())
	}
	fmt.Println()
}

// printRefDetail prints the full detail view of a reference.
func printRefDetail(ref reference.Reference) {
	fmt.Println(ref.ID)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	if ref.Type != reference.Untyped {
		fmt.Printf("Type:     %s\n", ref.Type)
	}
	if title := ref.Title.String(); title != "" {
		fmt.Printf("Title:    %s\n", wrapText(title, TextWrapWidth, "          "))
	}
	if len(ref.Authors) > 0 {
		fmt.Printf("Authors:  %s\n", wrapText(formatAuthorsFull(ref.Authors), TextWrapWidth, "          "))
	}

	if ref.IsPartOf != nil {
		in := ref.IsPartOf.Title.String()
		if ref.IsPartOf.Volume != "" {
			in += ", vol. " + ref.IsPartOf.Volume
		}
		if ref.IsPartOf.Issue != "" {
			in += ", no. " + ref.IsPartOf.Issue
		}
		fmt.Printf("In:       %s\n", wrapText(in, TextWrapWidth, "          "))
		if len(ref.IsPartOf.Editors) > 0 {
			fmt.Printf("Editors:  %s\n", wrapText(formatAuthorsFull(ref.IsPartOf.Editors), TextWrapWidth, "          "))
		}
	}

	if pages := formatPages(ref); pages != "" {
		fmt.Printf("Pages:    %s\n", pages)
	}
	if year := ref.Year(); year != 0 {
		fmt.Printf("Year:     %d\n", year)
	}

	pub := ref.Publisher
	if pub == nil && ref.IsPartOf != nil {
		pub = ref.IsPartOf.Publisher
	}
	if pub != nil {
		line := pub.Name
		if pub.Address != "" {
			line = pub.Address + ": " + line
		}
		fmt.Printf("Publisher: %s\n", line)
	}

	if ref.DOI != "" {
		fmt.Printf("DOI:      %s\n", ref.DOI)
	}
	if ref.URL != "" {
		fmt.Printf("URL:      %s\n", ref.URL)
	}

	if ref.Text != "" {
		fmt.Println()
		fmt.Println("Text:")
		fmt.Printf("  %s\n", wrapText(ref.Text, TextWrapWidth, "  "))
	}
}
