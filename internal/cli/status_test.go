package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_EmptyDB(t *testing.T) {
	store := setupStore(t)

	var buf bytes.Buffer
	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "dev", out: &buf}
	require.NoError(t, cmd.executeWithStore(context.Background(), store))

	output := buf.String()
	assert.Contains(t, output, "Ticket Hawk Status")
	assert.Contains(t, output, "Version:       dev")
	assert.Contains(t, output, "Events:        0 (0 active)")
	assert.Contains(t, output, "Snapshots:     0")
	assert.Contains(t, output, "No active events.")
	assert.NotContains(t, output, "Last checked")
}

func TestStatus_WithData(t *testing.T) {
	store := setupStore(t)
	seedEvent(t, store, "vv1A", "Symphony Under the Stars", price(40), price(45.5))
	seedEvent(t, store, "vv1B", "Jazz Night")

	var buf bytes.Buffer
	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "dev", out: &buf}
	require.NoError(t, cmd.executeWithStore(context.Background(), store))

	output := buf.String()
	assert.Contains(t, output, "Events:        2 (2 active)")
	assert.Contains(t, output, "Snapshots:     2")
	assert.Contains(t, output, "Last checked:")
	assert.Contains(t, output, "[vv1A] Symphony Under the Stars (2026-11-03)")
	assert.Contains(t, output, "$45.50 - $91.00 CAD (available)")
	assert.Contains(t, output, "[vv1B] Jazz Night")
	assert.Contains(t, output, "no snapshots yet")
}

func TestStatus_JSON(t *testing.T) {
	store := setupStore(t)
	seedEvent(t, store, "vv1A", "Symphony Under the Stars", nil)
	seedEvent(t, store, "vv1B", "Jazz Night")

	var buf bytes.Buffer
	cmd := &StatusCommand{globals: &GlobalFlags{JSON: true}, version: "1.0.0", out: &buf}
	require.NoError(t, cmd.executeWithStore(context.Background(), store))

	var out statusJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0.0", out.Version)
	assert.Equal(t, store.Path(), out.DatabasePath)
	assert.Positive(t, out.DatabaseSizeBytes)
	assert.Equal(t, int64(2), out.TotalEvents)
	assert.Equal(t, int64(1), out.TotalSnapshots)
	assert.NotEmpty(t, out.NewestSnapshot)
	require.Len(t, out.Events, 2)

	byID := map[string]statusEventJSON{}
	for _, e := range out.Events {
		byID[e.ExternalID] = e
	}
	require.NotNil(t, byID["vv1A"].Latest)
	assert.Equal(t, "sold_out", byID["vv1A"].Latest.Availability)
	assert.Nil(t, byID["vv1A"].Latest.MinPrice)
	assert.Nil(t, byID["vv1B"].Latest)
}

func TestStatus_ThroughRunWithArgs(t *testing.T) {
	clearEnv(t)
	store := setupStore(t)
	seedEvent(t, store, "vv1A", "Symphony Under the Stars", price(40))
	t.Setenv("TICKETHAWK_DB_PATH", store.Path())

	var err error
	output := captureOutput(t, func() {
		err = RunWithArgs("dev", []string{"--env-file", "", "status"})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "[vv1A] Symphony Under the Stars")
}
