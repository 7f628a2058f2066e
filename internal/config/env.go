package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAPIKey          = "TICKETMASTER_API_KEY"
	EnvBaseURL         = "TICKETMASTER_BASE_URL"
	EnvDBPath          = "TICKETHAWK_DB_PATH"
	EnvLogLevel        = "TICKETHAWK_LOG_LEVEL"
	EnvMetricsTextfile = "TICKETHAWK_METRICS_TEXTFILE"
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if isNotExist(err) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. Unset or empty variables
// leave the current value alone.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvAPIKey, &c.Ticketmaster.APIKey},
		{EnvBaseURL, &c.Ticketmaster.BaseURL},
		{EnvDBPath, &c.Storage.Path},
		{EnvLogLevel, &c.Logging.Level},
		{EnvMetricsTextfile, &c.Metrics.Textfile},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}
