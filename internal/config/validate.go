package config

import (
	"fmt"
	"strings"
)

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Field + " " + e.Reason
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Ticketmaster.APIKey == "" {
		return &ConfigError{Field: "ticketmaster.api_key", Reason: fmt.Sprintf("is required (set %s in the environment or .env file)", EnvAPIKey)}
	}
	if c.Ticketmaster.BaseURL == "" {
		return &ConfigError{Field: "ticketmaster.base_url", Reason: "is required"}
	}
	if c.Ticketmaster.Timeout <= 0 {
		return &ConfigError{Field: "ticketmaster.timeout", Reason: "must be positive"}
	}
	if c.Ticketmaster.MinRequestInterval <= 0 {
		return &ConfigError{Field: "ticketmaster.min_request_interval", Reason: "must be positive"}
	}
	if c.Storage.Path == "" {
		return &ConfigError{Field: "storage.path", Reason: "is required"}
	}
	if c.Monitoring.IntervalMinutes <= 0 {
		return &ConfigError{Field: "monitoring.interval_minutes", Reason: "must be positive"}
	}
	if c.Monitoring.PriceDropThreshold <= 0 || c.Monitoring.PriceDropThreshold > 1 {
		return &ConfigError{Field: "monitoring.price_drop_threshold", Reason: fmt.Sprintf("(%g) must be in (0, 1]", c.Monitoring.PriceDropThreshold)}
	}
	if c.Pricing.DefaultCurrency == "" {
		return &ConfigError{Field: "pricing.default_currency", Reason: "is required"}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Reason: fmt.Sprintf("%q is not one of debug, info, warn, error", c.Logging.Level)}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "logging.format", Reason: fmt.Sprintf("%q is not one of text, json", c.Logging.Format)}
	}

	return nil
}
