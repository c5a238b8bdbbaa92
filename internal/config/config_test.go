package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	root := "/test/repo"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"RefsiftPath", RefsiftPath, "/test/repo/.refsift"},
		{"ConfigPath", ConfigPath, "/test/repo/.refsift/config.json"},
		{"RefsPath", RefsPath, "/test/repo/.refsift/refs.jsonl"},
		{"CachePath", CachePath, "/test/repo/.refsift/cache"},
		{"DBPath", DBPath, "/test/repo/.refsift/cache/refs.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(root)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, root, got, tt.want)
			}
		})
	}
}

func TestIsRepository(t *testing.T) {
	tmpDir := t.TempDir()

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true for non-repo directory")
	}

	if err := os.Mkdir(filepath.Join(tmpDir, RefsiftDir), 0755); err != nil {
		t.Fatalf("Failed to create .refsift: %v", err)
	}

	if !IsRepository(tmpDir) {
		t.Error("IsRepository() = false for repo directory")
	}
}

func TestIsRepository_FileNotDir(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, RefsiftDir)
	if err := os.WriteFile(path, []byte("not a dir"), 0644); err != nil {
		t.Fatalf("Failed to create .refsift file: %v", err)
	}

	if IsRepository(tmpDir) {
		t.Error("IsRepository() = true when .refsift is a file")
	}
}

func TestFindRepository(t *testing.T) {
	tmpDir := t.TempDir()
	repoDir := filepath.Join(tmpDir, "repo")
	nestedDir := filepath.Join(repoDir, "notes", "drafts")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.Mkdir(filepath.Join(repoDir, RefsiftDir), 0755); err != nil {
		t.Fatalf("Failed to create .refsift: %v", err)
	}

	found, err := FindRepository(nestedDir)
	if err != nil {
		t.Fatalf("FindRepository() error = %v", err)
	}
	if found != repoDir {
		t.Errorf("FindRepository() = %q, want %q", found, repoDir)
	}

	found, err = FindRepository(repoDir)
	if err != nil {
		t.Fatalf("FindRepository() error = %v", err)
	}
	if found != repoDir {
		t.Errorf("FindRepository() = %q, want %q", found, repoDir)
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := FindRepository(tmpDir)
	if err == nil {
		t.Error("FindRepository() should return error when no repo found")
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(tmpDir, RefsiftDir), 0755); err != nil {
		t.Fatalf("Failed to create .refsift: %v", err)
	}

	cfg := &Config{
		PDFRoot:             "/path/to/pdfs",
		CrossrefMailto:      "someone@example.org",
		PDFPageLimit:        20,
		PartialMaxRemaining: 5,
	}
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.PDFRoot != cfg.PDFRoot {
		t.Errorf("PDFRoot = %q, want %q", loaded.PDFRoot, cfg.PDFRoot)
	}
	if loaded.CrossrefMailto != cfg.CrossrefMailto {
		t.Errorf("CrossrefMailto = %q, want %q", loaded.CrossrefMailto, cfg.CrossrefMailto)
	}
	if loaded.PDFPageLimit != 20 || loaded.PartialMaxRemaining != 5 {
		t.Errorf("limits = %d/%d", loaded.PDFPageLimit, loaded.PartialMaxRemaining)
	}
}

func TestLoad_Missing(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(tmpDir, RefsiftDir), 0755); err != nil {
		t.Fatalf("Failed to create .refsift: %v", err)
	}

	// A repo without a config file gets defaults, not an error
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PDFRoot != "" || cfg.PDFPageLimit != 0 {
		t.Errorf("Load() missing config = %+v, want zero config", cfg)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(tmpDir, RefsiftDir), 0755); err != nil {
		t.Fatalf("Failed to create .refsift: %v", err)
	}

	if err := os.WriteFile(ConfigPath(tmpDir), []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write invalid config: %v", err)
	}

	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Load() should return error for invalid JSON")
	}
}

func TestValidatePDFRoot(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(tmpFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", false}, // Empty is allowed
		{"valid directory", tmpDir, false},
		{"non-existent path", "/nonexistent/path", true},
		{"file not directory", tmpFile, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePDFRoot(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePDFRoot(%q) error = %v, wantErr = %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	if got := ExpandPath("~/papers"); got != filepath.Join(home, "papers") {
		t.Errorf("ExpandPath(~/papers) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}
