package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIBRARY_NAME", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("EXPORT_PATH", "")
	t.Setenv("METRICS", "")

	cfg := Load()

	if cfg.LibraryName != "Ma Bibliothèque" {
		t.Errorf("LibraryName: expected default, got %q", cfg.LibraryName)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: expected info, got %q", cfg.LogLevel)
	}
	if cfg.ExportPath != "" {
		t.Errorf("ExportPath: expected empty, got %q", cfg.ExportPath)
	}
	if cfg.Metrics {
		t.Error("Metrics: expected false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIBRARY_NAME", "Médiathèque")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPORT_PATH", "out/library.db")
	t.Setenv("METRICS", "true")

	cfg := Load()

	if cfg.LibraryName != "Médiathèque" {
		t.Errorf("LibraryName: got %q", cfg.LibraryName)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if cfg.ExportPath != "out/library.db" {
		t.Errorf("ExportPath: got %q", cfg.ExportPath)
	}
	if !cfg.Metrics {
		t.Error("Metrics: expected true")
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	content := "LIBRARY_NAME=From File\nLOG_LEVEL=warn\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	chdir(t, dir)
	t.Setenv("LIBRARY_NAME", "From Env")
	t.Setenv("LOG_LEVEL", "")
	// godotenv only fills variables that are unset
	os.Unsetenv("LOG_LEVEL")

	cfg := Load()

	if cfg.LibraryName != "From Env" {
		t.Errorf("LibraryName: expected env to win, got %q", cfg.LibraryName)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: expected value from .env, got %q", cfg.LogLevel)
	}
}

func TestGetBoolFallback(t *testing.T) {
	t.Setenv("METRICS", "not-a-bool")
	if getBool("METRICS", true) != true {
		t.Error("expected fallback on parse error")
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
