package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/runnerr0/tickethawk/internal/model"
	"github.com/runnerr0/tickethawk/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string            `json:"version"`
	DatabasePath      string            `json:"database_path"`
	DatabaseSizeBytes int64             `json:"database_size_bytes"`
	TotalEvents       int64             `json:"total_events"`
	ActiveEvents      int64             `json:"active_events"`
	TotalSnapshots    int64             `json:"total_snapshots"`
	NewestSnapshot    string            `json:"newest_snapshot,omitempty"`
	Events            []statusEventJSON `json:"events"`
}

type statusEventJSON struct {
	eventJSON
	Latest *snapshotJSON `json:"latest_snapshot"`
}

// trackedEvent pairs an active event with its latest snapshot, if any.
type trackedEvent struct {
	Event  model.Event
	Latest *model.PriceSnapshot
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	ctx := context.Background()
	store, _, err := prepare(ctx, c.globals)
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(ctx, store)
}

// executeWithStore runs status against a provided store (for testing).
func (c *StatusCommand) executeWithStore(ctx context.Context, store *storage.SQLiteStore) error {
	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	events, err := store.GetActiveEvents(ctx)
	if err != nil {
		return fmt.Errorf("get active events: %w", err)
	}

	tracked := make([]trackedEvent, 0, len(events))
	for _, e := range events {
		latest, err := store.GetLatestSnapshot(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("latest snapshot for %s: %w", e.ExternalID, err)
		}
		tracked = append(tracked, trackedEvent{Event: e, Latest: latest})
	}

	out := outputOrStdout(c.out)
	dbPath := store.Path()
	dbSize := databaseSize(dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(out, stats, dbPath, dbSize, tracked)
	}
	c.printStatusHuman(out, stats, dbPath, dbSize, tracked)
	return nil
}

func (c *StatusCommand) printStatusHuman(w io.Writer, stats *storage.Stats, dbPath string, dbSize int64, tracked []trackedEvent) {
	fmt.Fprintln(w, "Ticket Hawk Status")
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "Version:       %s\n", c.version)
	fmt.Fprintf(w, "Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Fprintf(w, "Events:        %s (%s active)\n", formatNumber(stats.TotalEvents), formatNumber(stats.ActiveEvents))
	fmt.Fprintf(w, "Snapshots:     %s\n", formatNumber(stats.TotalSnapshots))
	if !stats.NewestSnapshot.IsZero() {
		fmt.Fprintf(w, "Last checked:  %s\n", stats.NewestSnapshot.Local().Format(time.DateTime))
	}

	if len(tracked) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No active events.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Active Events:")
	for _, t := range tracked {
		fmt.Fprintf(w, "  [%s] %s (%s)\n", t.Event.ExternalID, t.Event.Name, t.Event.EventDate)
		if t.Latest == nil {
			fmt.Fprintln(w, "      no snapshots yet")
			continue
		}
		fmt.Fprintf(w, "      %s (%s) at %s\n",
			t.Latest.PriceLabel(), t.Latest.Availability, t.Latest.CheckedAt.Local().Format(time.DateTime))
	}
}

func (c *StatusCommand) printStatusJSON(w io.Writer, stats *storage.Stats, dbPath string, dbSize int64, tracked []trackedEvent) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalEvents:       stats.TotalEvents,
		ActiveEvents:      stats.ActiveEvents,
		TotalSnapshots:    stats.TotalSnapshots,
		NewestSnapshot:    formatTime(stats.NewestSnapshot),
		Events:            make([]statusEventJSON, 0, len(tracked)),
	}

	for _, t := range tracked {
		ev := statusEventJSON{eventJSON: toEventJSON(t.Event)}
		if t.Latest != nil {
			snap := toSnapshotJSON(*t.Latest)
			ev.Latest = &snap
		}
		out.Events = append(out.Events, ev)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
