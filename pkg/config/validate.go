package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "rate_limit.interval").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.RateLimit.Interval <= 0 {
		errs = append(errs, FieldError{
			Field:   "rate_limit.interval",
			Message: fmt.Sprintf("must be positive, got %s", cfg.RateLimit.Interval),
		})
	}
	if cfg.RateLimit.RequestLimit <= 0 {
		errs = append(errs, FieldError{
			Field:   "rate_limit.request_limit",
			Message: fmt.Sprintf("must be positive, got %d", cfg.RateLimit.RequestLimit),
		})
	}

	if cfg.CRPT.BaseURL == "" {
		errs = append(errs, FieldError{
			Field:   "crpt.base_url",
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(cfg.CRPT.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, FieldError{
			Field:   "crpt.base_url",
			Message: fmt.Sprintf("must be a valid URL, got %q", cfg.CRPT.BaseURL),
		})
	}
	if cfg.CRPT.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "crpt.timeout",
			Message: fmt.Sprintf("must be positive, got %s", cfg.CRPT.Timeout),
		})
	}

	if cfg.Journal.Enabled {
		if cfg.Journal.Path == "" {
			errs = append(errs, FieldError{
				Field:   "journal.path",
				Message: "must not be empty when the journal is enabled",
			})
		}
		if cfg.Journal.RetentionDays < 0 {
			errs = append(errs, FieldError{
				Field:   "journal.retention_days",
				Message: fmt.Sprintf("must not be negative, got %d", cfg.Journal.RetentionDays),
			})
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Telemetry.Logging.Level),
		})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be json or text, got %q", cfg.Telemetry.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
