package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPath(t *testing.T) {
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/refsift/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	// Empty XDG_CONFIG_HOME should use ~/.config
	os.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "refsift", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}
	if cfg.LibraryPath != "" {
		t.Errorf("LibraryPath = %q, want empty", cfg.LibraryPath)
	}
}

func writeGlobalConfig(t *testing.T, tmpDir, content string) {
	t.Helper()
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	writeGlobalConfig(t, tmpDir, "library_path: ~/refs/library\ncrossref_mailto: someone@example.org\n")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	// Check tilde expansion
	home, _ := os.UserHomeDir()
	wantPath := filepath.Join(home, "refs/library")
	if cfg.LibraryPath != wantPath {
		t.Errorf("LibraryPath = %q, want %q", cfg.LibraryPath, wantPath)
	}
	if cfg.CrossrefMailto != "someone@example.org" {
		t.Errorf("CrossrefMailto = %q", cfg.CrossrefMailto)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	writeGlobalConfig(t, tmpDir, "library_path: [unclosed\n")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	_, err := LoadGlobalConfig()
	if err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestValidateLibraryPath(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	// Not configured
	tmpDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmpDir)
	if _, err := ValidateLibraryPath(); err != ErrLibraryPathNotConfigured {
		t.Errorf("ValidateLibraryPath() error = %v, want ErrLibraryPathNotConfigured", err)
	}

	// Configured but missing
	ResetGlobalConfigCache()
	writeGlobalConfig(t, tmpDir, "library_path: /nonexistent/library\n")
	if _, err := ValidateLibraryPath(); err == nil {
		t.Error("ValidateLibraryPath() should fail for missing path")
	}

	// Configured and present
	ResetGlobalConfigCache()
	libDir := filepath.Join(tmpDir, "library")
	if err := os.Mkdir(libDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeGlobalConfig(t, tmpDir, "library_path: "+libDir+"\n")
	got, err := ValidateLibraryPath()
	if err != nil {
		t.Fatalf("ValidateLibraryPath() error = %v", err)
	}
	if got != libDir {
		t.Errorf("ValidateLibraryPath() = %q, want %q", got, libDir)
	}
}

func TestGlobalConfigCache(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	writeGlobalConfig(t, tmpDir, "crossref_mailto: first@example.org\n")
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg1, _ := LoadGlobalConfig()
	if cfg1.CrossrefMailto != "first@example.org" {
		t.Errorf("First load: CrossrefMailto = %q", cfg1.CrossrefMailto)
	}

	writeGlobalConfig(t, tmpDir, "crossref_mailto: second@example.org\n")

	// Second load returns the cached value
	cfg2, _ := LoadGlobalConfig()
	if cfg2.CrossrefMailto != "first@example.org" {
		t.Errorf("Second load: CrossrefMailto = %q, want cached first@example.org", cfg2.CrossrefMailto)
	}

	ResetGlobalConfigCache()
	cfg3, _ := LoadGlobalConfig()
	if cfg3.CrossrefMailto != "second@example.org" {
		t.Errorf("Third load: CrossrefMailto = %q, want second@example.org", cfg3.CrossrefMailto)
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	msg := HelpfulConfigMessage()
	if len(msg) < 50 {
		t.Error("HelpfulConfigMessage() seems too short")
	}
}
