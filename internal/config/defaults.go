package config

import (
	"path/filepath"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultBaseURL            = "https://app.ticketmaster.com/discovery/v2"
	DefaultCountryCode        = "CA"
	DefaultTimeout            = 30 * time.Second
	DefaultMinRequestInterval = 200 * time.Millisecond
	DefaultIntervalMinutes    = 20
	DefaultPriceDropThreshold = 0.10
	DefaultCurrency           = "CAD"
	DefaultEnvFile            = ".env"
)

// DefaultDBPath is relative to the working directory.
var DefaultDBPath = filepath.Join("data", "ticket-hawk.db")

// DefaultConfig returns a Config populated with all default values. The
// API key has no default.
func DefaultConfig() *Config {
	return &Config{
		Ticketmaster: TicketmasterConfig{
			BaseURL:            DefaultBaseURL,
			CountryCode:        DefaultCountryCode,
			Timeout:            DefaultTimeout,
			MinRequestInterval: DefaultMinRequestInterval,
		},
		Storage: StorageConfig{
			Path: DefaultDBPath,
		},
		Monitoring: MonitoringConfig{
			IntervalMinutes:    DefaultIntervalMinutes,
			PriceDropThreshold: DefaultPriceDropThreshold,
		},
		Pricing: PricingConfig{
			DefaultCurrency: DefaultCurrency,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
