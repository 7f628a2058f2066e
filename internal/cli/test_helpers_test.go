package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/runnerr0/tickethawk/internal/model"
	"github.com/runnerr0/tickethawk/internal/storage"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// setupStore opens a migrated database under t.TempDir.
func setupStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "hawk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seedEvent inserts an event with one snapshot per price in prices. A nil
// price records a sold out snapshot.
func seedEvent(t *testing.T, store *storage.SQLiteStore, externalID, name string, prices ...*float64) int64 {
	t.Helper()
	ctx := context.Background()

	id, err := store.AddEvent(ctx, &model.Event{
		ExternalID: externalID,
		Name:       name,
		EventDate:  "2026-11-03",
		Venue:      "Massey Hall",
		City:       "Toronto",
		URL:        "https://www.ticketmaster.ca/event/" + externalID,
		Active:     true,
	})
	require.NoError(t, err)

	for _, p := range prices {
		snap := model.PriceSnapshot{EventID: id, Currency: "CAD", Availability: model.AvailabilitySoldOut}
		if p != nil {
			hi := *p * 2
			snap.MinPrice, snap.MaxPrice = p, &hi
			snap.Availability = model.AvailabilityAvailable
		}
		_, err := store.AddPriceSnapshot(ctx, &snap)
		require.NoError(t, err)
	}
	return id
}

func price(v float64) *float64 { return &v }
