package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8081" {
		t.Fatalf("http addr: got %q", cfg.HTTPAddr)
	}
	if cfg.SitesPath != "data/sites.json" || cfg.LinksPath != "data/links.json" {
		t.Fatalf("paths: got %q, %q", cfg.SitesPath, cfg.LinksPath)
	}
	if cfg.ReloadInterval != 0 {
		t.Fatalf("reload interval default must be 0, got %v", cfg.ReloadInterval)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "http_addr: \":9000\"\nlog_level: debug\nreload_interval: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9000" || cfg.LogLevel != "debug" {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.ReloadInterval != 30*time.Second {
		t.Fatalf("reload interval: got %v", cfg.ReloadInterval)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("http_addr: \":9000\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDR", ":7777")
	t.Setenv("RELOAD_INTERVAL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7777" {
		t.Fatalf("env must win over file, got %q", cfg.HTTPAddr)
	}
	if cfg.ReloadInterval != time.Minute {
		t.Fatalf("reload interval: got %v", cfg.ReloadInterval)
	}
}

func TestLoad_BadInputs(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("missing config file must error")
	}

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("RELOAD_INTERVAL", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatal("bad RELOAD_INTERVAL must error")
	}
}
