package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/refsift/refsift/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set repository configuration values",
	Long: `Get or set repository configuration values.

Usage:
  refsift config                            # Show all config
  refsift config pdf-root                   # Get specific value
  refsift config pdf-root ~/papers          # Set value

Keys:
  pdf-root               Folder searched for bare PDF filenames
  crossref-mailto        Contact address for the DOI resolver polite pool
  pdf-page-limit         Pages scanned per PDF (0 = all)
  partial-max-remaining  Leftover characters a partial parse may leave
  partial-max-percent    Leftover percentage a partial parse may leave`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	PDFRoot             string `json:"pdf_root,omitempty"`
	CrossrefMailto      string `json:"crossref_mailto,omitempty"`
	PDFPageLimit        int    `json:"pdf_page_limit,omitempty"`
	PartialMaxRemaining int    `json:"partial_max_remaining,omitempty"`
	PartialMaxPercent   int    `json:"partial_max_percent,omitempty"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("pdf-root:              %s\n", cfg.PDFRoot)
			fmt.Printf("crossref-mailto:       %s\n", cfg.CrossrefMailto)
			fmt.Printf("pdf-page-limit:        %d\n", cfg.PDFPageLimit)
			fmt.Printf("partial-max-remaining: %d\n", cfg.PartialMaxRemaining)
			fmt.Printf("partial-max-percent:   %d\n", cfg.PartialMaxPercent)
		} else {
			outputJSON(ConfigResponse{
				PDFRoot:             cfg.PDFRoot,
				CrossrefMailto:      cfg.CrossrefMailto,
				PDFPageLimit:        cfg.PDFPageLimit,
				PartialMaxRemaining: cfg.PartialMaxRemaining,
				PartialMaxPercent:   cfg.PartialMaxPercent,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		value, ok := configValue(cfg, key)
		if !ok {
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := setConfigValue(cfg, key, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}

	return nil
}

func configValue(cfg *config.Config, key string) (string, bool) {
	switch key {
	case "pdf-root":
		return cfg.PDFRoot, true
	case "crossref-mailto":
		return cfg.CrossrefMailto, true
	case "pdf-page-limit":
		return strconv.Itoa(cfg.PDFPageLimit), true
	case "partial-max-remaining":
		return strconv.Itoa(cfg.PartialMaxRemaining), true
	case "partial-max-percent":
		return strconv.Itoa(cfg.PartialMaxPercent), true
	}
	return "", false
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "pdf-root":
		expanded := config.ExpandPath(value)
		if err := config.ValidatePDFRoot(expanded); err != nil {
			return err
		}
		cfg.PDFRoot = expanded
		return nil
	case "crossref-mailto":
		cfg.CrossrefMailto = value
		return nil
	case "pdf-page-limit":
		return setIntKey(&cfg.PDFPageLimit, key, value)
	case "partial-max-remaining":
		return setIntKey(&cfg.PartialMaxRemaining, key, value)
	case "partial-max-percent":
		return setIntKey(&cfg.PartialMaxPercent, key, value)
	}
	return fmt.Errorf("unknown configuration key: %s", key)
}

func setIntKey(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("%s must be a non-negative integer", key)
	}
	*dst = n
	return nil
}

// normalizeKey converts key formats (pdf_root, PDF-Root) to a consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
