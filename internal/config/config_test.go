package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvDataset, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogPretty, "")
	t.Setenv(EnvMetricsAddr, "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default level info, got %s", cfg.LogLevel)
	}
	if cfg.Dataset != "" || cfg.MetricsAddr != "" {
		t.Errorf("Expected empty dataset and metrics addr, got %+v", cfg)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	// t.Setenv restores the previous values; unset so the file applies
	for _, key := range []string{EnvDataset, EnvLogLevel, EnvLogPretty} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	content := EnvDataset + "=/data/predators.json\n" +
		EnvLogLevel + "=debug\n" +
		EnvLogPretty + "=true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Dataset != "/data/predators.json" {
		t.Errorf("Expected dataset from file, got %q", cfg.Dataset)
	}
	if cfg.LogLevel != "debug" || !cfg.LogPretty {
		t.Errorf("Expected debug pretty logging, got %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv(EnvLogLevel, "loud")
	if _, err := LoadFile(missing); err == nil {
		t.Error("Expected error for unknown log level")
	}

	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvLogPretty, "maybe")
	if _, err := LoadFile(missing); err == nil {
		t.Error("Expected error for invalid pretty flag")
	}
}
