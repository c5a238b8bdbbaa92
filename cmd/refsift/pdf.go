package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/refsift/refsift/internal/config"
	"github.com/refsift/refsift/internal/importer"
	"github.com/refsift/refsift/internal/pdf"
	"github.com/refsift/refsift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	pdfPages int
	pdfStore bool
)

func init() {
	pdfCmd.Flags().IntVar(&pdfPages, "pages", 0, "Maximum pages to scan (0 = config value, or all)")
	pdfCmd.Flags().BoolVar(&pdfStore, "store", false, "Store the parsed references in the repository")
	rootCmd.AddCommand(pdfCmd)
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Extract and parse the bibliography of a PDF",
	Long: `Extract the references section of a PDF and parse its entries.

The text after the last References/Bibliography heading is split into
entries and each entry parsed. By default the parsed references are
printed; with --store they are imported into the repository with the
same DOI deduplication as 'refsift import'.

Examples:
  refsift pdf paper.pdf
  refsift pdf paper.pdf --store
  refsift pdf thesis.pdf --pages 40`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	pages := pdfPages
	var repoRoot string

	if pdfStore {
		repoRoot = mustFindRepository()
	} else if start, exitCode := getStartingDirectory(); exitCode == 0 {
		repoRoot, _ = config.FindRepository(start)
	}

	path := args[0]
	if repoRoot != "" {
		if cfg, err := config.Load(repoRoot); err == nil {
			if pages == 0 {
				pages = cfg.PDFPageLimit
			}
			if cfg.PDFRoot != "" {
				path = resolvePDFPath(cfg.PDFRoot, path)
			}
		}
	}

	text, err := pdf.ExtractText(path, pages)
	if err != nil {
		exitWithError(ExitError, "extracting text: %v", err)
	}

	section := pdf.ReferencesSection(text)
	refs := importer.ParseText([]byte(section))
	if len(refs) == 0 {
		exitWithError(ExitDataError, "no bibliography entries found in %s", args[0])
	}

	if !pdfStore {
		if humanOutput {
			for i, ref := range refs {
				printRefSummary(i+1, ref)
			}
		} else {
			outputJSON(refs)
		}
		return nil
	}

	refsPath := config.RefsPath(repoRoot)
	existing, err := storage.ReadAll(refsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading existing refs: %v", err)
	}

	batch := classifyBatch(existing, refs)
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

// resolvePDFPath joins a bare filename onto the configured PDF root.
// Absolute paths and paths that exist as given are left alone.
func resolvePDFPath(pdfRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	joined := filepath.Join(pdfRoot, path)
	if _, err := os.Stat(joined); err == nil {
		return joined
	}
	return path
}
