package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

sync:
  interval: "2s"
  remote_timeout: "1s"
  ephemeral_ttl: "12h"

governance:
  trust_threshold: 0.75

index:
  base_url: "http://localhost:9200"
  timeout: "2s"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Sync.Interval != 2*time.Second {
		t.Errorf("sync.interval = %v, want 2s", cfg.Sync.Interval)
	}
	if cfg.Sync.EphemeralTTL != 12*time.Hour {
		t.Errorf("sync.ephemeral_ttl = %v, want 12h", cfg.Sync.EphemeralTTL)
	}
	if cfg.Governance.TrustThreshold != 0.75 {
		t.Errorf("governance.trust_threshold = %v, want 0.75", cfg.Governance.TrustThreshold)
	}
	if cfg.Index.BaseURL != "http://localhost:9200" {
		t.Errorf("index.base_url = %q", cfg.Index.BaseURL)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOnlyWithDefaults(t *testing.T) {
	dir := t.TempDir()
	// Point CONFIG_PATH at nothing by chdir into an empty temp dir.
	t.Chdir(dir)
	validEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Sync.Interval != 5*time.Second {
		t.Errorf("default sync.interval = %v, want 5s", cfg.Sync.Interval)
	}
	if cfg.Sync.EphemeralTTL != 24*time.Hour {
		t.Errorf("default sync.ephemeral_ttl = %v, want 24h", cfg.Sync.EphemeralTTL)
	}
	if cfg.Sync.EvictionInterval != time.Minute {
		t.Errorf("default sync.eviction_interval = %v, want 1m", cfg.Sync.EvictionInterval)
	}
	if cfg.Governance.TrustThreshold != 0.7 {
		t.Errorf("default governance.trust_threshold = %v, want 0.7", cfg.Governance.TrustThreshold)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("default log.format = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_MissingDSNFails(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATABASE_DSN", "placeholder") // register env restore
	os.Unsetenv("DATABASE_DSN")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DSN")
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{DSN: "postgres://x"},
			Sync: SyncConfig{
				Interval:         5 * time.Second,
				RemoteTimeout:    3 * time.Second,
				EphemeralTTL:     24 * time.Hour,
				EvictionInterval: time.Minute,
			},
			Governance: GovernanceConfig{TrustThreshold: 0.7},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sync interval", func(c *Config) { c.Sync.Interval = 0 }},
		{"zero remote timeout", func(c *Config) { c.Sync.RemoteTimeout = 0 }},
		{"zero ephemeral ttl", func(c *Config) { c.Sync.EphemeralTTL = 0 }},
		{"zero eviction interval", func(c *Config) { c.Sync.EvictionInterval = 0 }},
		{"threshold above 1", func(c *Config) { c.Governance.TrustThreshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.Governance.TrustThreshold = -0.1 }},
		{"index url without timeout", func(c *Config) { c.Index.BaseURL = "http://x"; c.Index.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
