package main

import (
	"fmt"
	"os"

	"github.com/refsift/refsift/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new refsift repository",
	Long: `Initialize a new refsift repository in the current directory.

Creates:
  .refsift/
  ├── refs.jsonl      # Empty file
  ├── config.json     # Default config
  └── cache/          # Empty directory (gitignored)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	root := cwd
	if env := os.Getenv("REFSIFT_ROOT"); env != "" {
		root = env
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a refsift repository")
	}

	if err := os.MkdirAll(config.RefsiftPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .refsift directory: %v", err)
	}
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	refsFile, err := os.Create(config.RefsPath(root))
	if err != nil {
		exitWithError(ExitError, "creating refs.jsonl: %v", err)
	}
	refsFile.Close()

	cfg := &config.Config{}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized refsift repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
