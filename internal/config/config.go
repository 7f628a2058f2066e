package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Ticket Hawk configuration.
type Config struct {
	Ticketmaster TicketmasterConfig `yaml:"ticketmaster"`
	Storage      StorageConfig      `yaml:"storage"`
	Monitoring   MonitoringConfig   `yaml:"monitoring"`
	Pricing      PricingConfig      `yaml:"pricing"`
	Logging      LoggingConfig      `yaml:"logging"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

type TicketmasterConfig struct {
	APIKey             string        `yaml:"api_key"`
	BaseURL            string        `yaml:"base_url"`
	CountryCode        string        `yaml:"country_code"`
	Timeout            time.Duration `yaml:"timeout"`
	MinRequestInterval time.Duration `yaml:"min_request_interval"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

// MonitoringConfig is loaded and validated but not yet acted on; it is
// reserved for scheduled checks and price-drop alerts.
type MonitoringConfig struct {
	IntervalMinutes    int     `yaml:"interval_minutes"`
	PriceDropThreshold float64 `yaml:"price_drop_threshold"`
}

type PricingConfig struct {
	DefaultCurrency string `yaml:"default_currency"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file at path and merges it over defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Resolve builds the effective configuration: defaults, then the YAML
// file at configPath (skipped when empty), then variables from envFile
// (skipped when it does not exist), then the process environment.
func Resolve(configPath, envFile string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		loaded, err := Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// isNotExist reports whether err means a missing file.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
