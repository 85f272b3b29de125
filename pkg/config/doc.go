// Package config loads and validates crptgate configuration.
//
// Configuration is read from a YAML file, filled in with defaults, and then
// optionally overridden by CRPTGATE_* environment variables. Validation runs
// last, so an invalid value fails loading regardless of where it came from.
//
//	cfg, err := config.LoadWithEnvOverrides("config.yaml")
//
// Example configuration:
//
//	rate_limit:
//	  interval: 1s
//	  request_limit: 5
//	crpt:
//	  base_url: https://ismp.crpt.ru
//	  token: secret
//	  timeout: 60s
//	journal:
//	  enabled: true
//	  path: data/journal.db
//	  prune_schedule: "0 3 * * *"
//	  retention_days: 90
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
package config
