package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/runnerr0/tickethawk/internal/config"
	"github.com/runnerr0/tickethawk/internal/logging"
	"github.com/runnerr0/tickethawk/internal/storage"
)

// loadConfig resolves configuration from the global flags.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals == nil {
		globals = &GlobalFlags{EnvFile: config.DefaultEnvFile}
	}
	return config.Resolve(globals.Config, globals.EnvFile)
}

// setupLogger builds the logger for cfg, installs it as the slog default,
// and returns it. Logs go to stderr so stdout stays parseable.
func setupLogger(cfg *config.Config, globals *GlobalFlags) (*slog.Logger, error) {
	verbose := globals != nil && globals.Verbose
	logger, err := logging.New(cfg.Logging, verbose, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// prepare loads config and logging for a read-only command and opens the store.
func prepare(ctx context.Context, globals *GlobalFlags) (*storage.SQLiteStore, *slog.Logger, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, err
	}
	logger, err := setupLogger(cfg, globals)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database opened", "path", store.Path())
	return store, logger, nil
}

func outputOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// databaseSize returns the size of the database file, or 0 when it cannot
// be determined.
func databaseSize(path string) int64 {
	if path == "" || path == storage.MemoryPath {
		return 0
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
