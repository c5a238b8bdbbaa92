package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/refsift/refsift/internal/bib"
	"github.com/refsift/refsift/internal/config"
	"github.com/refsift/refsift/internal/importer"
	"github.com/refsift/refsift/internal/intext"
	"github.com/refsift/refsift/internal/reference"
	"github.com/refsift/refsift/internal/refid"
	"github.com/spf13/cobra"
)

var parseInText bool

func init() {
	parseCmd.Flags().BoolVar(&parseInText, "intext", false, "Scan for in-text (Author, Year) citations instead of bibliography entries")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse [entry]",
	Short: "Parse bibliography entries into structured references",
	Long: `Parse bibliography entries into structured references.

With an argument, the argument is parsed as a single entry. Without one,
stdin is read and split into entries (numbered markers, blank-line
separated, or one per line).

Parsing never fails: entries no style grammar recognizes come back as
text-only references with any DOI or URL extracted heuristically.

Examples:
  refsift parse "Smith, John. The Long Road Home. Penguin, 2020."
  refsift parse < references.txt
  refsift parse --intext < chapter.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) == 1 {
		input = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitWithError(ExitError, "reading stdin: %v", err)
		}
		input = stripBOM(string(data))
	}

	if parseInText {
		return runParseInText(input)
	}

	policy := dispatchPolicy()

	var refs []reference.Reference
	if len(args) == 1 {
		refs = []reference.Reference{parseEntry(input, policy)}
	} else {
		for _, entry := range importer.SplitBibliography(input) {
			refs = append(refs, parseEntry(entry, policy))
		}
	}

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No entries found")
			return nil
		}
		for i, ref := range refs {
			printRefSummary(i+1, ref)
		}
	} else {
		if refs == nil {
			refs = []reference.Reference{}
		}
		outputJSON(refs)
	}

	return nil
}

func parseEntry(entry string, p bib.Policy) reference.Reference {
	ref := bib.ParseReferenceWith(entry, p)
	if ref.ID == "" {
		ref.ID = refid.Generate(ref.Authors, false, ref.Year(), "")
	}
	return ref
}

func runParseInText(input string) error {
	cites := intext.Scan(input)

	if humanOutput {
		if len(cites) == 0 {
			fmt.Println("No citations found")
			return nil
		}
		for _, c := range cites {
			fmt.Printf("%-24s %s\n", c.ID, c.Raw)
		}
	} else {
		if cites == nil {
			cites = []intext.Citation{}
		}
		outputJSON(cites)
	}

	return nil
}

// dispatchPolicy returns the partial-match acceptance policy, with
// repository config overrides applied when run inside a repository.
func dispatchPolicy() bib.Policy {
	p := bib.DefaultPolicy

	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		return p
	}
	repoRoot, err := config.FindRepository(start)
	if err != nil {
		return p
	}
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return p
	}

	if cfg.PartialMaxRemaining > 0 {
		p.MaxRemaining = cfg.PartialMaxRemaining
	}
	if cfg.PartialMaxPercent > 0 {
		p.MaxPercent = cfg.PartialMaxPercent
	}
	return p
}

// stripBOM drops a UTF-8 byte order mark from pasted input.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
