package config

import "time"

// Default values for configuration fields.
const (
	DefaultRateLimitInterval = time.Second
	DefaultRequestLimit      = 5

	DefaultCRPTBaseURL = "https://ismp.crpt.ru"
	DefaultCRPTTimeout = 60 * time.Second

	DefaultJournalPath   = "data/journal.db"
	DefaultPruneSchedule = "0 3 * * *"
	DefaultRetentionDays = 90

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills in default values for unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.RateLimit.Interval == 0 {
		cfg.RateLimit.Interval = DefaultRateLimitInterval
	}
	if cfg.RateLimit.RequestLimit == 0 {
		cfg.RateLimit.RequestLimit = DefaultRequestLimit
	}

	if cfg.CRPT.BaseURL == "" {
		cfg.CRPT.BaseURL = DefaultCRPTBaseURL
	}
	if cfg.CRPT.Timeout == 0 {
		cfg.CRPT.Timeout = DefaultCRPTTimeout
	}

	if cfg.Journal.Path == "" {
		cfg.Journal.Path = DefaultJournalPath
	}
	if cfg.Journal.PruneSchedule == "" {
		cfg.Journal.PruneSchedule = DefaultPruneSchedule
	}
	if cfg.Journal.RetentionDays == 0 {
		cfg.Journal.RetentionDays = DefaultRetentionDays
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
}
