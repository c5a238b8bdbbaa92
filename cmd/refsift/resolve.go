package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/refsift/refsift/internal/config"
	"github.com/refsift/refsift/internal/crossref"
	"github.com/refsift/refsift/internal/reference"
	"github.com/refsift/refsift/internal/storage"
	"github.com/spf13/cobra"
)

var (
	resolveStore   bool
	resolveTimeout time.Duration
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveStore, "store", false, "Store the resolved reference in the repository")
	resolveCmd.Flags().DurationVar(&resolveTimeout, "timeout", crossref.DefaultTimeout, "Request timeout")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <doi>",
	Short: "Resolve a DOI to a structured reference",
	Long: `Resolve a DOI to a structured reference via doi.org content
negotiation (CSL-JSON).

Set crossref_mailto in the global config (or CROSSREF_MAILTO in .env) to
route requests through the resolver's polite pool.

Examples:
  refsift resolve 10.1038/nature12373
  refsift resolve 10.1038/nature12373 --store`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	doi := args[0]

	var opts []crossref.ClientOption
	if mailto := resolverMailto(); mailto != "" {
		opts = append(opts, crossref.WithMailto(mailto))
	}
	if base := config.GetCrossrefAPIURL(); base != "" {
		opts = append(opts, crossref.WithBaseURL(base))
	}

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	client := crossref.NewClient(opts...)
	work, err := client.Resolve(ctx, doi)
	if err != nil {
		if crossref.IsNotFound(err) {
			exitWithError(ExitDataError, "DOI not found: %s", doi)
		}
		exitWithError(ExitError, "resolving DOI: %v", err)
	}

	ref := work.ToReference()

	if !resolveStore {
		if humanOutput {
			printRefDetail(ref)
		} else {
			outputJSON(ref)
		}
		return nil
	}

	repoRoot := mustFindRepository()
	refsPath := config.RefsPath(repoRoot)
	existing, err := storage.ReadAll(refsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading existing refs: %v", err)
	}

	batch := classifyBatch(existing, []reference.Reference{ref})
	if err := applyImports(refsPath, existing, batch.actions); err != nil {
		exitWithError(ExitError, "writing refs: %v", err)
	}

	stored := batch.details[0]
	if humanOutput {
		fmt.Printf("Stored %s (%s)\n", stored.ID, stored.Action)
	} else {
		outputJSON(map[string]string{"status": stored.Action, "id": stored.ID})
	}

	return nil
}

// resolverMailto prefers the environment (.env included), then the
// repository config, then the global config.
func resolverMailto() string {
	if mailto := os.Getenv("CROSSREF_MAILTO"); mailto != "" {
		return mailto
	}
	if start, exitCode := getStartingDirectory(); exitCode == 0 {
		if repoRoot, err := config.FindRepository(start); err == nil {
			if cfg, err := config.Load(repoRoot); err == nil && cfg.CrossrefMailto != "" {
				return cfg.CrossrefMailto
			}
		}
	}
	return config.GetCrossrefMailto()
}
