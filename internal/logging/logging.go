// Package logging builds the slog logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/runnerr0/tickethawk/internal/config"
)

// ParseLevel maps a config level name to a slog level. "warning" is
// accepted as an alias for "warn".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger writing to w with the handler and level named in
// cfg. verbose forces debug level. An unknown level or format is reported
// as a *config.ConfigError.
func New(cfg config.LoggingConfig, verbose bool, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, &config.ConfigError{Field: "logging.level", Reason: fmt.Sprintf("%q is not one of debug, info, warn, error", cfg.Level)}
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, &config.ConfigError{Field: "logging.format", Reason: fmt.Sprintf("%q is not one of text, json", cfg.Format)}
	}

	return slog.New(h), nil
}
