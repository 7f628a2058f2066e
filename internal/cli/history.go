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

type historyJSON struct {
	Event     eventJSON      `json:"event"`
	Snapshots []snapshotJSON `json:"snapshots"`
}

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	if c.Event == "" {
		return fmt.Errorf("--event is required for history command")
	}

	ctx := context.Background()
	store, _, err := prepare(ctx, c.globals)
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(ctx, store)
}

// executeWithStore runs history against a provided store (for testing).
func (c *HistoryCommand) executeWithStore(ctx context.Context, store *storage.SQLiteStore) error {
	if c.Event == "" {
		return fmt.Errorf("--event is required for history command")
	}

	event, err := store.GetEventByExternalID(ctx, c.Event)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("event not tracked: %s", c.Event)
	}

	limit := c.Limit
	if limit <= 0 {
		limit = storage.DefaultRecentLimit
	}
	snaps, err := store.GetRecentSnapshots(ctx, event.ID, limit)
	if err != nil {
		return fmt.Errorf("get snapshots: %w", err)
	}

	out := outputOrStdout(c.out)
	if c.globals != nil && c.globals.JSON {
		return printHistoryJSON(out, event, snaps)
	}
	printHistoryHuman(out, event, snaps)
	return nil
}

func printHistoryHuman(w io.Writer, event *model.Event, snaps []model.PriceSnapshot) {
	fmt.Fprintf(w, "%s\n", event.Name)
	fmt.Fprintf(w, "Date:   %s\n", event.EventDate)
	if event.Venue != "" {
		fmt.Fprintf(w, "Venue:  %s, %s\n", event.Venue, event.City)
	}
	fmt.Fprintln(w)

	if len(snaps) == 0 {
		fmt.Fprintln(w, "No snapshots recorded.")
		return
	}

	fmt.Fprintf(w, "Found %d snapshot(s):\n", len(snaps))
	for _, s := range snaps {
		fmt.Fprintf(w, "  - %s: %s (%s)\n", s.CheckedAt.Local().Format(time.DateTime), s.PriceLabel(), s.Availability)
	}
}

func printHistoryJSON(w io.Writer, event *model.Event, snaps []model.PriceSnapshot) error {
	out := historyJSON{
		Event:     toEventJSON(*event),
		Snapshots: make([]snapshotJSON, 0, len(snaps)),
	}
	for _, s := range snaps {
		out.Snapshots = append(out.Snapshots, toSnapshotJSON(s))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
