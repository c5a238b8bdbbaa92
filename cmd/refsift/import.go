package main

import (
	"fmt"
	"os"

	"github.com/refsift/refsift/internal/config"
	"github.com/refsift/refsift/internal/importer"
	"github.com/refsift/refsift/internal/reference"
	"github.com/refsift/refsift/internal/storage"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a plain-text bibliography into the repository",
	Long: `Import a plain-text bibliography file into the repository.

The file is split into entries (numbered markers, blank-line separated,
or one per line) and each entry is parsed. Entries whose DOI matches an
existing reference update it in place; everything else is appended with
a collision-free ID.

Run 'refsift rebuild' afterwards to refresh the query database.

Examples:
  refsift import references.txt
  refsift import references.txt --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// DryRunResult represents the result of a dry-run import.
type DryRunResult struct {
	WouldImport int            `json:"would_import"`
	WouldUpdate int            `json:"would_update"`
	WouldSkip   int            `json:"would_skip"`
	Details     []ImportDetail `json:"details,omitempty"`
}

// ImportDetail describes a single import action.
type ImportDetail struct {
	ID     string `json:"id"`
	Action string `json:"action"` // import, update, skip
	Title  string `json:"title"`
	Reason string `json:"reason,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading file: %v", err)
	}

	newRefs := importer.ParseText(data)
	if len(newRefs) == 0 {
		exitWithError(ExitDataError, "no entries found in %s", args[0])
	}

	refsPath := config.RefsPath(repoRoot)
	existing, err := storage.ReadAll(refsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading existing refs: %v", err)
	}

	batch := classifyBatch(existing, newRefs)

	if importDryRun {
		if humanOutput {
			fmt.Println("Dry run...")
			fmt.Printf("  Would import: %d new references\n", batch.imported)
			fmt.Printf("  Would update: %d existing references (matched by DOI)\n", batch.updated)
			fmt.Printf("  Would skip:   %d duplicates\n", batch.skipped)
		} else {
			outputJSON(DryRunResult{
				WouldImport: batch.imported,
				WouldUpdate: batch.updated,
				WouldSkip:   batch.skipped,
				Details:     batch.details,
			})
		}
		return nil
	}

	if err := applyImports(refsPath, existing, batch.actions); err != nil {
		exitWithError(ExitError, "writing refs: %v", err)
	}

	if humanOutput {
		fmt.Printf("  Imported: %d new references\n", batch.imported)
		fmt.Printf("  Updated:  %d existing references (matched by DOI)\n", batch.updated)
		fmt.Printf("  Skipped:  %d duplicates\n", batch.skipped)
	} else {
		outputJSON(ImportResult{
			Imported: batch.imported,
			Updated:  batch.updated,
			Skipped:  batch.skipped,
		})
	}

	return nil
}

// importBatch is the outcome of classifying a batch of incoming
// references against the existing store.
type importBatch struct {
	imported int
	updated  int
	skipped  int
	details  []ImportDetail
	actions  []storage.RefWithAction
}

// classifyBatch decides, for each incoming reference, whether it is a
// new import, a DOI-matched update of an existing reference, or a
// duplicate within the batch. IDs of new imports are uniquified against
// everything already seen.
func classifyBatch(existing []reference.Reference, newRefs []reference.Reference) importBatch {
	all := make([]reference.Reference, len(existing))
	copy(all, existing)

	var batch importBatch
	for _, newRef := range newRefs {
		action, reason := "import", ""
		existingIdx := -1

		if newRef.DOI != "" {
			if idx, found := storage.FindByDOI(all, newRef.DOI); found {
				if idx < len(existing) {
					action, reason = "update", "doi_match"
					existingIdx = idx
				} else {
					action, reason = "skip", "duplicate_in_batch"
				}
			}
		}

		switch action {
		case "import":
			newRef.ID = storage.GenerateUniqueID(all, newRef.ID)
			batch.actions = append(batch.actions, storage.RefWithAction{Ref: newRef, Action: "import"})
			all = append(all, newRef)
			batch.imported++
		case "update":
			newRef.ID = existing[existingIdx].ID
			batch.actions = append(batch.actions, storage.RefWithAction{Ref: newRef, Action: "update", ExistingIdx: existingIdx})
			batch.updated++
		case "skip":
			batch.skipped++
		}

		batch.details = append(batch.details, ImportDetail{
			ID:     newRef.ID,
			Action: action,
			Title:  truncateString(newRef.Title.String(), ImportTitleMaxLen),
			Reason: reason,
		})
	}
	return batch
}

// applyImports writes the classified batch back to the refs file:
// updates in place first, then new imports appended.
func applyImports(path string, existing []reference.Reference, actions []storage.RefWithAction) error {
	refs := make([]reference.Reference, len(existing))
	copy(refs, existing)

	for _, a := range actions {
		if a.Action == "update" {
			refs[a.ExistingIdx] = a.Ref
		}
	}
	for _, a := range actions {
		if a.Action == "import" {
			refs = append(refs, a.Ref)
		}
	}

	return storage.WriteAll(path, refs)
}
