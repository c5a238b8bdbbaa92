package main

import (
	"fmt"

	"github.com/refsift/refsift/internal/reference"
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all references",
	Long: `List all references in the repository.

Examples:
  refsift list
  refsift list --limit 100`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	refs, err := db.ListAll(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing references: %v", err)
	}

	total, _ := db.Count()

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No references in repository")
		} else {
			if listLimit > 0 && listLimit < total {
				fmt.Printf("%d references (showing first %d):\n\n", total, len(refs))
			} else {
				fmt.Printf("%d references in repository:\n\n", len(refs))
			}
			for _, ref := range refs {
				fmt.Printf("  %-24s %s\n", ref.ID, truncateString(ref.Title.String(), ListTitleMaxLen))
			}
		}
	} else {
		if refs == nil {
			refs = []reference.Reference{}
		}
		outputJSON(refs)
	}

	return nil
}
