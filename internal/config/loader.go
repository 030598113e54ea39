package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "webscout.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Transport, "WEBSCOUT_TRANSPORT")
	setString(&cfg.Server.Port, "WEBSCOUT_PORT")
	setString(&cfg.Server.APIKey, "WEBSCOUT_API_KEY")

	setString(&cfg.Google.APIKey, "GOOGLE_API_KEY")
	setString(&cfg.Google.EngineID, "GOOGLE_SEARCH_ENGINE_ID")
	setString(&cfg.Google.Endpoint, "WEBSCOUT_GOOGLE_ENDPOINT")
	setInt(&cfg.Google.DefaultResults, "WEBSCOUT_GOOGLE_RESULTS")

	setString(&cfg.Wikipedia.Language, "WIKIPEDIA_LANGUAGE")
	setString(&cfg.Wikipedia.Endpoint, "WEBSCOUT_WIKIPEDIA_ENDPOINT")

	setString(&cfg.Fetch.UserAgent, "WEBSCOUT_FETCH_USER_AGENT")
	setInt(&cfg.Fetch.DefaultLength, "WEBSCOUT_FETCH_DEFAULT_LENGTH")
	setInt64(&cfg.Fetch.MaxBodyBytes, "WEBSCOUT_FETCH_MAX_BODY_BYTES")

	setInt(&cfg.Cache.Search.MaxEntries, "WEBSCOUT_CACHE_SEARCH_MAX_ENTRIES")
	setDuration(&cfg.Cache.Search.TTL, "WEBSCOUT_CACHE_SEARCH_TTL")
	setInt(&cfg.Cache.Wiki.MaxEntries, "WEBSCOUT_CACHE_WIKI_MAX_ENTRIES")
	setDuration(&cfg.Cache.Wiki.TTL, "WEBSCOUT_CACHE_WIKI_TTL")

	setDuration(&cfg.Upstream.Timeout, "WEBSCOUT_UPSTREAM_TIMEOUT")

	setInt(&cfg.Retry.MaxAttempts, "WEBSCOUT_RETRY_MAX_ATTEMPTS")
	setDuration(&cfg.Retry.InitialDelay, "WEBSCOUT_RETRY_INITIAL_DELAY")
	setDuration(&cfg.Retry.MaxDelay, "WEBSCOUT_RETRY_MAX_DELAY")
	setFloat64(&cfg.Retry.Multiplier, "WEBSCOUT_RETRY_MULTIPLIER")

	setInt(&cfg.Breaker.MaxFailures, "WEBSCOUT_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "WEBSCOUT_BREAKER_TIMEOUT")

	setString(&cfg.Logging.Level, "WEBSCOUT_LOG_LEVEL")
	setString(&cfg.Logging.Service, "WEBSCOUT_LOG_SERVICE")

	setBool(&cfg.Telemetry.Enabled, "WEBSCOUT_OTEL_ENABLED")
	setString(&cfg.Telemetry.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// validate checks that required fields are set. Missing provider credentials
// are deliberately not an error: they disable the provider instead.
func validate(cfg *Config) error {
	if cfg.Server.Transport != "stdio" && cfg.Server.Transport != "http" {
		return fmt.Errorf("server.transport must be stdio or http, got %q", cfg.Server.Transport)
	}
	if cfg.Server.Transport == "http" && cfg.Server.Port == "" {
		return errors.New("server.port is required for http transport")
	}
	if cfg.Google.DefaultResults < 1 || cfg.Google.DefaultResults > 10 {
		return errors.New("google.default_results must be between 1 and 10")
	}
	if cfg.Wikipedia.Language == "" {
		return errors.New("wikipedia.language is required")
	}
	if cfg.Cache.Search.MaxEntries < 1 || cfg.Cache.Wiki.MaxEntries < 1 {
		return errors.New("cache pool max_entries must be >= 1")
	}
	if cfg.Cache.Search.TTL <= 0 || cfg.Cache.Wiki.TTL <= 0 {
		return errors.New("cache pool ttl must be > 0")
	}
	if cfg.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be > 0")
	}
	if cfg.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
