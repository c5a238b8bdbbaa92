package main

import (
	"fmt"
	"strings"

	"github.com/refsift/refsift/internal/reference"
	"github.com/refsift/refsift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchLimit    int
	searchAuthors  []string
	searchYearFrom int
	searchYearTo   int
	searchType     string
	searchDOI      string
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringSliceVar(&searchAuthors, "author", nil, "Filter by author name (repeatable)")
	searchCmd.Flags().IntVar(&searchYearFrom, "year-from", 0, "Earliest publication year")
	searchCmd.Flags().IntVar(&searchYearTo, "year-to", 0, "Latest publication year")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by work type (article, book, chapter, webpage)")
	searchCmd.Flags().StringVar(&searchDOI, "doi", "", "Filter by exact DOI")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search references by keyword",
	Long: `Search references by keyword.

Query Syntax:
  Plain text       - Searches title, container, and authors
  author:name      - Search author names only
  title:text       - Search title only
  container:text   - Search container (journal/book) titles only

Filter flags combine with the keyword query and each other.

Examples:
  refsift search "climate"
  refsift search "author:Smith"
  refsift search "climate" --year-from 2020 --type article
  refsift search --doi 10.1234/example`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	hasFilters := len(searchAuthors) > 0 || searchYearFrom != 0 || searchYearTo != 0 ||
		searchType != "" || searchDOI != ""
	if query == "" && !hasFilters {
		exitWithError(ExitError, "a query or at least one filter flag is required")
	}

	var refs []reference.Reference
	var err error

	switch {
	case hasFilters:
		refs, err = db.SearchWithFilters(storage.SearchFilters{
			Keyword:  query,
			Authors:  searchAuthors,
			YearFrom: searchYearFrom,
			YearTo:   searchYearTo,
			Type:     searchType,
			DOI:      searchDOI,
		}, searchLimit)
	case strings.HasPrefix(query, "author:"):
		refs, err = db.SearchField("author", strings.TrimPrefix(query, "author:"), searchLimit)
	case strings.HasPrefix(query, "title:"):
		refs, err = db.SearchField("title", strings.TrimPrefix(query, "title:"), searchLimit)
	case strings.HasPrefix(query, "container:"):
		refs, err = db.SearchField("container", strings.TrimPrefix(query, "container:"), searchLimit)
	default:
		refs, err = db.Search(query, searchLimit)
	}

	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// Empty result is not an error
	if refs == nil {
		refs = []reference.Reference{}
	}

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No references found")
		} else {
			fmt.Printf("Found %d references:\n\n", len(refs))
			for i, ref := range refs {
				printRefSummary(i+1, ref)
			}
		}
	} else {
		outputJSON(refs)
	}

	return nil
}
