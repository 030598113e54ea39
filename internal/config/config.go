// Package config provides hierarchical configuration loading for WebScout.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the WebScout server.
type Config struct {
	Server    Server    `yaml:"server"`
	Google    Google    `yaml:"google"`
	Wikipedia Wikipedia `yaml:"wikipedia"`
	Fetch     Fetch     `yaml:"fetch"`
	Cache     Cache     `yaml:"cache"`
	Upstream  Upstream  `yaml:"upstream"`
	Retry     Retry     `yaml:"retry"`
	Breaker   Breaker   `yaml:"breaker"`
	Logging   Logging   `yaml:"logging"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// Server holds MCP transport configuration.
type Server struct {
	Transport string `yaml:"transport"` // "stdio" | "http"
	Port      string `yaml:"port"`      // http transport only
	APIKey    string `yaml:"api_key"`   // bearer token for http transport; empty disables auth
}

// Google holds Google Custom Search credentials and defaults.
// An empty APIKey or EngineID disables the search provider rather than
// failing startup.
type Google struct {
	APIKey         string `yaml:"api_key"`
	EngineID       string `yaml:"engine_id"`
	Endpoint       string `yaml:"endpoint"`
	DefaultResults int    `yaml:"default_results"`
}

// Wikipedia holds encyclopedia provider configuration. Endpoint overrides the
// language-derived API host; leave empty for https://<language>.wikipedia.org.
type Wikipedia struct {
	Language string `yaml:"language"`
	Endpoint string `yaml:"endpoint"`
}

// Fetch holds generic page-fetch configuration.
type Fetch struct {
	UserAgent     string `yaml:"user_agent"`
	DefaultLength int    `yaml:"default_length"` // max extracted characters per page
	MaxBodyBytes  int64  `yaml:"max_body_bytes"` // hard cap on downloaded body size
}

// Pool sizes one cache pool.
type Pool struct {
	MaxEntries int           `yaml:"max_entries"`
	TTL        time.Duration `yaml:"ttl"`
}

// Cache holds the per-provider-family pool sizing. The search pool is larger
// and longer-lived because upstream search calls are costlier and
// rate-limited; the wiki pool refreshes more often.
type Cache struct {
	Search Pool `yaml:"search"`
	Wiki   Pool `yaml:"wiki"`
}

// Upstream holds settings shared by all provider adapters.
type Upstream struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Retry holds the retry policy applied to transient upstream failures.
type Retry struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	Multiplier   float64       `yaml:"multiplier"`
}

// Breaker holds circuit breaker configuration, one breaker per provider family.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Telemetry holds OpenTelemetry export configuration. Disabled by default;
// when disabled the global noop providers stay in place.
type Telemetry struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Server: Server{
			Transport: "stdio",
			Port:      "8080",
		},
		Google: Google{
			Endpoint:       "https://www.googleapis.com/customsearch/v1",
			DefaultResults: 5,
		},
		Wikipedia: Wikipedia{
			Language: "en",
		},
		Fetch: Fetch{
			UserAgent:     "webscout/0.1 (+https://github.com/hollandm/webscout)",
			DefaultLength: 10000,
			MaxBodyBytes:  2 << 20,
		},
		Cache: Cache{
			Search: Pool{MaxEntries: 256, TTL: time.Hour},
			Wiki:   Pool{MaxEntries: 64, TTL: 15 * time.Minute},
		},
		Upstream: Upstream{
			Timeout: 10 * time.Second,
		},
		Retry: Retry{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
			Multiplier:   2.0,
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Logging: Logging{
			Level:   "info",
			Service: "webscout",
		},
		Telemetry: Telemetry{
			Enabled:  false,
			Endpoint: "localhost:4317",
		},
	}
}
