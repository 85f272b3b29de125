package config

import "time"

// Config is the root configuration structure for crptgate.
type Config struct {
	// RateLimit configures the admission gate: how many submissions are
	// allowed per fixed window.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// CRPT configures the upstream CRPT API client.
	CRPT CRPTConfig `yaml:"crpt"`

	// Journal configures the submission audit journal.
	Journal JournalConfig `yaml:"journal"`

	// Telemetry configures logging.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RateLimitConfig configures the fixed-window rate limiter.
type RateLimitConfig struct {
	// Interval is the replenishment window duration. Must be positive.
	// Default: 1s.
	Interval time.Duration `yaml:"interval"`

	// RequestLimit is the number of admissions per window. Must be positive.
	// Default: 5.
	RequestLimit int `yaml:"request_limit"`
}

// CRPTConfig configures the CRPT API client.
type CRPTConfig struct {
	// BaseURL is the API root. Default: "https://ismp.crpt.ru".
	BaseURL string `yaml:"base_url"`

	// Token is the bearer token for the API. Optional.
	Token string `yaml:"token"`

	// Timeout is the per-request timeout. Default: 60s.
	Timeout time.Duration `yaml:"timeout"`
}

// JournalConfig configures the submission journal.
type JournalConfig struct {
	// Enabled turns journaling on. Default: false.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path. Default: "data/journal.db".
	Path string `yaml:"path"`

	// PruneSchedule is a standard cron expression for retention pruning.
	// Empty disables scheduled pruning. Default: "0 3 * * *".
	PruneSchedule string `yaml:"prune_schedule"`

	// RetentionDays is how many days of entries to keep. Default: 90.
	RetentionDays int `yaml:"retention_days"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`
}
