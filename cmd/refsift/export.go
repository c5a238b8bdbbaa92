package main

import (
	"fmt"

	"github.com/refsift/refsift/internal/export"
	"github.com/refsift/refsift/internal/reference"
	"github.com/spf13/cobra"
)

var exportAppend string

func init() {
	exportCmd.Flags().StringVar(&exportAppend, "append", "", "Append entries missing from this .bib file instead of printing")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [id...]",
	Short: "Export references as BibTeX",
	Long: `Export references as BibTeX.

Without arguments the whole repository is exported; with IDs only those
references are. With --append, entries the .bib file already has (by
DOI, then by citation key) are skipped and the rest appended.

Examples:
  refsift export > library.bib
  refsift export smith-2023 jones-2021
  refsift export --append library.bib`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	var refs []reference.Reference
	if len(args) == 0 {
		all, err := db.ListAll(0)
		if err != nil {
			exitWithError(ExitError, "listing references: %v", err)
		}
		refs = all
	} else {
		for _, id := range args {
			ref, err := db.GetByID(id)
			if err != nil {
				exitWithError(ExitError, "getting reference: %v", err)
			}
			if ref == nil {
				exitWithError(ExitError, "reference not found: %s", id)
			}
			refs = append(refs, *ref)
		}
	}

	if exportAppend != "" {
		n, err := export.AppendNew(exportAppend, refs)
		if err != nil {
			exitWithError(ExitError, "appending to %s: %v", exportAppend, err)
		}
		if humanOutput {
			fmt.Printf("Appended %d entries to %s\n", n, exportAppend)
		} else {
			outputJSON(map[string]interface{}{"status": "appended", "appended": n, "path": exportAppend})
		}
		return nil
	}

	// BibTeX is the output format here, --human or not
	fmt.Print(export.ToBibTeXList(refs))
	return nil
}
