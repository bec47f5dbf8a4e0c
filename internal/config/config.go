// Package config loads service configuration from an optional YAML file
// with environment-variable overrides. Environment wins.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr    string `yaml:"http_addr"`
	LogLevel    string `yaml:"log_level"`
	DatabaseURL string `yaml:"database_url"`

	SitesPath string `yaml:"sites_path"`
	LinksPath string `yaml:"links_path"`

	// ReloadInterval of 0 disables the background reload watcher.
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

func defaults() Config {
	return Config{
		HTTPAddr:  ":8081",
		LogLevel:  "info",
		SitesPath: "data/sites.json",
		LinksPath: "data/links.json",
	}
}

// Load reads CONFIG_PATH (when set) and then applies environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.HTTPAddr = envOr("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.DatabaseURL = envOr("DATABASE_URL", cfg.DatabaseURL)
	cfg.SitesPath = envOr("SITES_PATH", cfg.SitesPath)
	cfg.LinksPath = envOr("LINKS_PATH", cfg.LinksPath)

	if v := os.Getenv("RELOAD_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse RELOAD_INTERVAL %q: %w", v, err)
		}
		cfg.ReloadInterval = d
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
