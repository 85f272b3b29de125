package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Writing config file: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "{}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RateLimit.Interval != DefaultRateLimitInterval {
		t.Errorf("Expected default interval %v, got %v", DefaultRateLimitInterval, cfg.RateLimit.Interval)
	}
	if cfg.RateLimit.RequestLimit != DefaultRequestLimit {
		t.Errorf("Expected default request limit %d, got %d", DefaultRequestLimit, cfg.RateLimit.RequestLimit)
	}
	if cfg.CRPT.BaseURL != DefaultCRPTBaseURL {
		t.Errorf("Expected default base URL, got %q", cfg.CRPT.BaseURL)
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("Unexpected logging defaults: %+v", cfg.Telemetry.Logging)
	}
}

func TestLoad_ParsesValues(t *testing.T) {
	path := writeConfigFile(t, `
rate_limit:
  interval: 2s
  request_limit: 10
crpt:
  base_url: https://example.test
  token: secret
  timeout: 30s
journal:
  enabled: true
  path: /tmp/j.db
  retention_days: 7
telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RateLimit.Interval != 2*time.Second || cfg.RateLimit.RequestLimit != 10 {
		t.Errorf("Unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if cfg.CRPT.BaseURL != "https://example.test" || cfg.CRPT.Token != "secret" {
		t.Errorf("Unexpected crpt config: %+v", cfg.CRPT)
	}
	if !cfg.Journal.Enabled || cfg.Journal.RetentionDays != 7 {
		t.Errorf("Unexpected journal config: %+v", cfg.Journal)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("Unexpected logging config: %+v", cfg.Telemetry.Logging)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := &Config{}
	cfg.RateLimit.Interval = -time.Second
	cfg.RateLimit.RequestLimit = 0
	cfg.CRPT.BaseURL = ""
	cfg.Telemetry.Logging.Level = "loud"
	cfg.Telemetry.Logging.Format = "yaml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	// interval, request_limit, base_url, timeout, level, format
	if len(vErr.Errors) != 6 {
		t.Errorf("Expected 6 field errors, got %d: %v", len(vErr.Errors), vErr)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	path := writeConfigFile(t, `
rate_limit:
  request_limit: -1
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for negative request limit")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
rate_limit:
  interval: 1s
  request_limit: 5
`)

	t.Setenv("CRPTGATE_RATE_LIMIT_REQUEST_LIMIT", "20")
	t.Setenv("CRPTGATE_CRPT_TOKEN", "env-token")
	t.Setenv("CRPTGATE_LOG_LEVEL", "warn")

	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadWithEnvOverrides failed: %v", err)
	}

	if cfg.RateLimit.RequestLimit != 20 {
		t.Errorf("Expected env override to set request limit 20, got %d", cfg.RateLimit.RequestLimit)
	}
	if cfg.CRPT.Token != "env-token" {
		t.Errorf("Expected env override to set token, got %q", cfg.CRPT.Token)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Expected env override to set log level warn, got %q", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadWithEnvOverrides_RevalidatesAfterOverride(t *testing.T) {
	path := writeConfigFile(t, "{}\n")

	t.Setenv("CRPTGATE_RATE_LIMIT_REQUEST_LIMIT", "-3")

	if _, err := LoadWithEnvOverrides(path); err == nil {
		t.Error("Expected validation failure for negative override")
	}
}
