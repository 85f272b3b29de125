package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use LoadWithEnvOverrides
// for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// CRPTGATE_SECTION_FIELD (e.g., CRPTGATE_CRPT_TOKEN) and always take
// precedence over file-based configuration.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies CRPTGATE_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CRPTGATE_RATE_LIMIT_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.Interval = d
		}
	}
	if val := os.Getenv("CRPTGATE_RATE_LIMIT_REQUEST_LIMIT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.RequestLimit = n
		}
	}

	if val := os.Getenv("CRPTGATE_CRPT_BASE_URL"); val != "" {
		cfg.CRPT.BaseURL = val
	}
	if val := os.Getenv("CRPTGATE_CRPT_TOKEN"); val != "" {
		cfg.CRPT.Token = val
	}
	if val := os.Getenv("CRPTGATE_CRPT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.CRPT.Timeout = d
		}
	}

	if val := os.Getenv("CRPTGATE_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Journal.Enabled = b
		}
	}
	if val := os.Getenv("CRPTGATE_JOURNAL_PATH"); val != "" {
		cfg.Journal.Path = val
	}

	if val := os.Getenv("CRPTGATE_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CRPTGATE_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}
