package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/refsift/refsift/internal/config"
	"github.com/refsift/refsift/internal/storage"
	"github.com/spf13/cobra"
)

var addID string

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "Override the generated reference ID")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [entry]",
	Short: "Parse a single entry and add it to the repository",
	Long: `Parse a single bibliography entry and add it to the repository.

The entry is taken from the arguments, or from stdin when none are
given. A reference with the same DOI updates the stored one; otherwise
the reference is appended under a collision-free ID.

Examples:
  refsift add "Smith, John. The Long Road Home. Penguin, 2020."
  pbpaste | refsift add`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	var entry string
	if len(args) > 0 {
		entry = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitWithError(ExitError, "reading stdin: %v", err)
		}
		entry = stripBOM(string(data))
	}
	if strings.TrimSpace(entry) == "" {
		exitWithError(ExitDataError, "empty entry")
	}

	ref := parseEntry(entry, dispatchPolicy())
	if addID != "" {
		ref.ID = addID
	}

	refsPath := config.RefsPath(repoRoot)
	existing, err := storage.ReadAll(refsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading existing refs: %v", err)
	}

	action := "added"
	if ref.DOI != "" {
		if idx, found := storage.FindByDOI(existing, ref.DOI); found {
			ref.ID = existing[idx].ID
			existing[idx] = ref
			if err := storage.WriteAll(refsPath, existing); err != nil {
				exitWithError(ExitError, "writing refs: %v", err)
			}
			action = "updated"
		}
	}

	if action == "added" {
		ref.ID = storage.GenerateUniqueID(existing, ref.ID)
		if err := storage.Append(refsPath, ref); err != nil {
			exitWithError(ExitError, "writing refs: %v", err)
		}
	}

	// Keep the query cache current for a single add
	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	if _, err := db.RebuildFromJSONL(refsPath); err != nil {
		exitWithError(ExitError, "refreshing database: %v", err)
	}

	if humanOutput {
		if action == "updated" {
			fmt.Printf("Updated %s\n\n", ref.ID)
		} else {
			fmt.Printf("Added %s\n\n", ref.ID)
		}
		printRefSummary(1, ref)
	} else {
		outputJSON(map[string]interface{}{
			"status":    action,
			"reference": ref,
		})
	}

	return nil
}
