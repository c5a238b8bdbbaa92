// Package config handles repository configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .refsift/config.json.
type Config struct {
	PDFRoot string `json:"pdf_root,omitempty"` // Absolute path to PDF folder

	// CrossrefMailto is included in resolver requests so doi.org can route
	// them through its polite pool.
	CrossrefMailto string `json:"crossref_mailto,omitempty"`

	// PDFPageLimit caps how many pages of a PDF are scanned for a
	// references section. Zero means the whole document.
	PDFPageLimit int `json:"pdf_page_limit,omitempty"`

	// Dispatcher threshold overrides for experimentation. Zero means use
	// the built-in defaults.
	PartialMaxRemaining int `json:"partial_max_remaining,omitempty"`
	PartialMaxPercent   int `json:"partial_max_percent,omitempty"`
}

const (
	RefsiftDir = ".refsift"
	ConfigFile = "config.json"
	RefsFile   = "refs.jsonl"
	CacheDir   = "cache"
	DBFile     = "refs.db"
)

// RefsiftPath returns the path to the .refsift directory from a root path.
func RefsiftPath(root string) string {
	return filepath.Join(root, RefsiftDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, RefsiftDir, ConfigFile)
}

// RefsPath returns the path to refs.jsonl from a root path.
func RefsPath(root string) string {
	return filepath.Join(root, RefsiftDir, RefsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, RefsiftDir, CacheDir)
}

// DBPath returns the path to refs.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, RefsiftDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a refsift repository.
func IsRepository(root string) bool {
	info, err := os.Stat(RefsiftPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a refsift repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a refsift repository (no .refsift directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
// A missing config file yields a zero config, not an error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidatePDFRoot checks that the PDF root path exists and is a directory.
func ValidatePDFRoot(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
