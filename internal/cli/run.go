package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runnerr0/tickethawk/internal/config"
	"github.com/runnerr0/tickethawk/internal/metrics"
	"github.com/runnerr0/tickethawk/internal/storage"
	"github.com/runnerr0/tickethawk/internal/ticketmaster"
	"github.com/runnerr0/tickethawk/internal/tracker"
)

// runJSON is the JSON output structure for the run command.
type runJSON struct {
	RunID        string         `json:"run_id"`
	Outcome      string         `json:"outcome"`
	DatabasePath string         `json:"database_path"`
	Found        int            `json:"found"`
	Event        *eventJSON     `json:"event,omitempty"`
	Existing     bool           `json:"existing"`
	Snapshots    []snapshotJSON `json:"snapshots"`
}

// Execute implements the go-flags Commander interface for RunCommand.
func (c *RunCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := setupLogger(cfg, c.globals)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("ticket hawk starting", "version", c.version)

	store, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		logger.Error("open database failed", "error", err)
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
		logger.Info("goodbye")
	}()
	logger.Info("database initialized", "path", store.Path())

	recorder := metrics.NewPrometheusRecorder(nil)
	client := newClient(cfg, logger, recorder)

	return c.executeWith(ctx, cfg, logger, client, store, recorder)
}

func newClient(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) *ticketmaster.Client {
	return ticketmaster.NewClient(cfg.Ticketmaster.BaseURL, cfg.Ticketmaster.APIKey,
		ticketmaster.WithTimeout(cfg.Ticketmaster.Timeout),
		ticketmaster.WithMinInterval(cfg.Ticketmaster.MinRequestInterval),
		ticketmaster.WithCountryCode(cfg.Ticketmaster.CountryCode),
		ticketmaster.WithLogger(logger),
		ticketmaster.WithRecorder(recorder),
	)
}

// executeWith runs the pipeline against the provided dependencies (for testing).
func (c *RunCommand) executeWith(ctx context.Context, cfg *config.Config, logger *slog.Logger, client tracker.EventSource, store *storage.SQLiteStore, recorder *metrics.PrometheusRecorder) error {
	out := outputOrStdout(c.out)
	asJSON := c.globals != nil && c.globals.JSON

	// The event preview is human output; keep stdout a single JSON document.
	preview := out
	if asJSON {
		preview = io.Discard
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if recorder != nil {
		rec = recorder
	}

	tr := tracker.New(client, store,
		tracker.WithLogger(logger),
		tracker.WithRecorder(rec),
		tracker.WithOutput(preview),
		tracker.WithDefaultCurrency(cfg.Pricing.DefaultCurrency),
		tracker.WithDatabasePath(store.Path()),
	)

	summary, err := tr.Run(ctx, tracker.Query{Keyword: c.Keyword, City: c.City, Recent: c.Recent})
	if err != nil {
		logRunError(logger, err)
		c.writeMetrics(cfg, logger, recorder)
		return err
	}

	c.writeMetrics(cfg, logger, recorder)

	if asJSON {
		return printRunJSON(out, summary)
	}
	summary.Print(out)
	return nil
}

func (c *RunCommand) writeMetrics(cfg *config.Config, logger *slog.Logger, recorder *metrics.PrometheusRecorder) {
	if cfg.Metrics.Textfile == "" || recorder == nil {
		return
	}
	if err := recorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("metrics not written", "path", cfg.Metrics.Textfile, "error", err)
	}
}

// logRunError logs err, adding the API's message when the failure came
// from a non-2xx response.
func logRunError(logger *slog.Logger, err error) {
	var apiErr *ticketmaster.APIError
	if errors.As(err, &apiErr) {
		logger.Error("run failed", "error", err, "status", apiErr.StatusCode, "api_message", apiErr.Message)
		return
	}
	var netErr *ticketmaster.NetworkError
	if errors.As(err, &netErr) {
		logger.Error("run failed", "error", err, "url", netErr.URL)
		return
	}
	logger.Error("run failed", "error", err)
}

func printRunJSON(w io.Writer, s *tracker.Summary) error {
	out := runJSON{
		RunID:        s.RunID,
		Outcome:      string(s.Outcome),
		DatabasePath: s.DatabasePath,
		Found:        s.Found,
		Existing:     s.Existing,
		Snapshots:    make([]snapshotJSON, 0, len(s.Snapshots)),
	}
	if s.Outcome == tracker.OutcomeTracked {
		ev := toEventJSON(s.Event)
		out.Event = &ev
	}
	for _, snap := range s.Snapshots {
		out.Snapshots = append(out.Snapshots, toSnapshotJSON(snap))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode run summary: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
