package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.ToolOverride("git") != "" {
		t.Error("Default config should have no tool overrides")
	}
}

func TestToolOverrideNilSafe(t *testing.T) {
	var cfg *Config
	if got := cfg.ToolOverride("git"); got != "" {
		t.Errorf("nil ToolOverride = %q, want empty", got)
	}
}

func TestLoadProjectOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
sdk_root = "/opt/sdks"

[tools]
doxygen = "/opt/doxygen/bin/doxygen"
p4 = "/usr/local/bin/p4"
`
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Tools = map[string]string{"doxygen": "/usr/bin/doxygen", "git": "/usr/bin/git"}

	if err := cfg.LoadProjectOverrides(dir); err != nil {
		t.Fatalf("LoadProjectOverrides: %v", err)
	}

	if cfg.SDKRoot != "/opt/sdks" {
		t.Errorf("SDKRoot = %q, want /opt/sdks", cfg.SDKRoot)
	}
	// Project file wins over the existing entry.
	if got := cfg.ToolOverride("doxygen"); got != "/opt/doxygen/bin/doxygen" {
		t.Errorf("doxygen override = %q", got)
	}
	// Entries not mentioned in the project file survive.
	if got := cfg.ToolOverride("git"); got != "/usr/bin/git" {
		t.Errorf("git override = %q", got)
	}
	if got := cfg.ToolOverride("p4"); got != "/usr/local/bin/p4" {
		t.Errorf("p4 override = %q", got)
	}
}

func TestLoadProjectOverridesMissingFile(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadProjectOverrides(t.TempDir()); err != nil {
		t.Errorf("missing project file should not error: %v", err)
	}
}

func TestLoadProjectOverridesBadTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ProjectFile), []byte("[tools\nbad"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := cfg.LoadProjectOverrides(dir); err == nil {
		t.Error("malformed project file should error")
	}
}

func TestCacheDir(t *testing.T) {
	got := CacheDir()
	if got == "" || !filepath.IsAbs(got) {
		t.Errorf("CacheDir() = %q, want absolute path", got)
	}
	if filepath.Base(got) != AppName {
		t.Errorf("CacheDir() = %q, want path ending in %q", got, AppName)
	}
}
