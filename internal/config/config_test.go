package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"antenna/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "antenna")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.OutputFile != filepath.Join(wantData, "live.txt") {
		t.Fatalf("unexpected output file: %q", cfg.Paths.OutputFile)
	}
	if cfg.Fetch.Timeout != 10 {
		t.Fatalf("unexpected fetch timeout: %d", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.DefaultSource != "https://live.fanmingming.com/tv/m3u/ipv6.m3u" {
		t.Fatalf("unexpected default source: %q", cfg.Fetch.DefaultSource)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antenna.toml")
	content := strings.Join([]string{
		"[paths]",
		`output_file = "` + filepath.Join(dir, "out", "live.txt") + `"`,
		"[fetch]",
		"timeout = 30",
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Fetch.Timeout != 30 {
		t.Fatalf("unexpected timeout: %d", cfg.Fetch.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %q", cfg.Logging.Level)
	}
	if cfg.Fetch.UserAgent == "" {
		t.Fatal("expected user agent default to backfill")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antenna.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "antenna.toml")
	if err := os.WriteFile(path, []byte("[fetch]\ntimeout = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for negative timeout")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Fetch.Timeout != 10 {
		t.Fatalf("sample config should carry defaults, got timeout %d", cfg.Fetch.Timeout)
	}
}
