package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setConfigHome points XDG_CONFIG_HOME at a temp dir and resets the
// cache for the test's duration.
func setConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	Reset()
	t.Cleanup(Reset)
	return dir
}

func TestPath(t *testing.T) {
	dir := setConfigHome(t)
	want := filepath.Join(dir, "refcheck", "config.yml")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	setConfigHome(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Style != DefaultStyle {
		t.Errorf("Style = %q, want default %q", cfg.Style, DefaultStyle)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want default %d", cfg.Concurrency, DefaultConcurrency)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := setConfigHome(t)
	path := filepath.Join(dir, "refcheck", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "style: ama\nregistry_paths:\n  - /data/predatory.csv\ncrossref_mailto: editor@example.org\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Style != "ama" {
		t.Errorf("Style = %q, want ama", cfg.Style)
	}
	if len(cfg.RegistryPaths) != 1 || cfg.RegistryPaths[0] != "/data/predatory.csv" {
		t.Errorf("RegistryPaths = %v", cfg.RegistryPaths)
	}
	if cfg.CrossrefMailto != "editor@example.org" {
		t.Errorf("CrossrefMailto = %q", cfg.CrossrefMailto)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := setConfigHome(t)
	path := filepath.Join(dir, "refcheck", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("style: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setConfigHome(t)
	t.Setenv("REFCHECK_STYLE", "ama")
	t.Setenv("REFCHECK_CROSSREF_MAILTO", "env@example.org")
	t.Setenv("REFCHECK_REGISTRY", "/a/one.csv"+string(os.PathListSeparator)+"/b/two.csv")
	t.Setenv("REFCHECK_CACHE", "/tmp/refcheck.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Style != "ama" {
		t.Errorf("Style = %q, want env override", cfg.Style)
	}
	if cfg.CrossrefMailto != "env@example.org" {
		t.Errorf("CrossrefMailto = %q, want env override", cfg.CrossrefMailto)
	}
	if len(cfg.RegistryPaths) != 2 || cfg.RegistryPaths[1] != "/b/two.csv" {
		t.Errorf("RegistryPaths = %v", cfg.RegistryPaths)
	}
	if cfg.CachePath != "/tmp/refcheck.db" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
}

func TestLoad_Cached(t *testing.T) {
	setConfigHome(t)
	first, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second {
		t.Error("Load() should return the cached config")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	setConfigHome(t)

	cfg := &Config{Style: "ama", Concurrency: 2, CachePath: "/tmp/c.db"}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Style != "ama" {
		t.Errorf("Style = %q, want ama", loaded.Style)
	}
	if loaded.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", loaded.Concurrency)
	}
	if loaded.CachePath != "/tmp/c.db" {
		t.Errorf("CachePath = %q, want /tmp/c.db", loaded.CachePath)
	}
}
