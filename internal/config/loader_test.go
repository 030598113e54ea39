package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Transport != "stdio" {
		t.Errorf("expected stdio transport, got %q", cfg.Server.Transport)
	}
	if cfg.Google.APIKey != "" {
		t.Errorf("expected google disabled by default, got key %q", cfg.Google.APIKey)
	}
	if cfg.Google.DefaultResults != 5 {
		t.Errorf("expected 5 default results, got %d", cfg.Google.DefaultResults)
	}
	if cfg.Wikipedia.Language != "en" {
		t.Errorf("expected language en, got %q", cfg.Wikipedia.Language)
	}
	if cfg.Cache.Search.MaxEntries <= cfg.Cache.Wiki.MaxEntries {
		t.Errorf("search pool should be larger than wiki pool: %d vs %d",
			cfg.Cache.Search.MaxEntries, cfg.Cache.Wiki.MaxEntries)
	}
	if cfg.Cache.Search.TTL <= cfg.Cache.Wiki.TTL {
		t.Errorf("search pool should be longer-lived than wiki pool: %v vs %v",
			cfg.Cache.Search.TTL, cfg.Cache.Wiki.TTL)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected 3 retry attempts, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Errorf("expected 10s upstream timeout, got %v", cfg.Upstream.Timeout)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webscout.yaml")
	yaml := `
server:
  transport: http
  port: "9090"
google:
  api_key: yaml-key
  engine_id: yaml-cx
cache:
  search:
    max_entries: 10
    ttl: 5m
wikipedia:
  language: de
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Server.Transport != "http" {
		t.Errorf("expected http transport, got %q", cfg.Server.Transport)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Google.APIKey != "yaml-key" || cfg.Google.EngineID != "yaml-cx" {
		t.Errorf("google credentials not loaded: %+v", cfg.Google)
	}
	if cfg.Cache.Search.MaxEntries != 10 || cfg.Cache.Search.TTL != 5*time.Minute {
		t.Errorf("search pool not loaded: %+v", cfg.Cache.Search)
	}
	// Fields absent from the YAML keep their defaults.
	if cfg.Cache.Wiki.MaxEntries != 64 {
		t.Errorf("wiki pool default lost: %+v", cfg.Cache.Wiki)
	}
	if cfg.Wikipedia.Language != "de" {
		t.Errorf("expected language de, got %q", cfg.Wikipedia.Language)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webscout.yaml")
	if err := os.WriteFile(path, []byte("google:\n  api_key: yaml-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GOOGLE_API_KEY", "env-key")
	t.Setenv("WEBSCOUT_CACHE_WIKI_TTL", "90s")
	t.Setenv("WEBSCOUT_RETRY_MAX_ATTEMPTS", "4")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Google.APIKey != "env-key" {
		t.Errorf("env should win over yaml, got %q", cfg.Google.APIKey)
	}
	if cfg.Cache.Wiki.TTL != 90*time.Second {
		t.Errorf("expected 90s wiki ttl, got %v", cfg.Cache.Wiki.TTL)
	}
	if cfg.Retry.MaxAttempts != 4 {
		t.Errorf("expected 4 attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestEmptyEnvDoesNotOverride(t *testing.T) {
	t.Setenv("WIKIPEDIA_LANGUAGE", "")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Wikipedia.Language != "en" {
		t.Errorf("empty env var must not clobber default, got %q", cfg.Wikipedia.Language)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad transport", func(c *Config) { c.Server.Transport = "grpc" }},
		{"http without port", func(c *Config) { c.Server.Transport = "http"; c.Server.Port = "" }},
		{"zero pool entries", func(c *Config) { c.Cache.Search.MaxEntries = 0 }},
		{"zero pool ttl", func(c *Config) { c.Cache.Wiki.TTL = 0 }},
		{"zero retry attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }},
		{"results out of range", func(c *Config) { c.Google.DefaultResults = 11 }},
		{"missing language", func(c *Config) { c.Wikipedia.Language = "" }},
		{"zero timeout", func(c *Config) { c.Upstream.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := validate(&cfg); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webscout.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
