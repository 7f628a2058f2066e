package storage

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(db *sql.DB) *MigrationRunner {
	return NewMigrationRunner(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner_FreshDB(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, newRunner(db).Run(ctx))

	for _, table := range []string{"events", "price_snapshots", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationRunner_IndexesCreated(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, newRunner(db).Run(ctx))

	for _, idx := range []string{"idx_events_active_date", "idx_price_snapshots_event_ts"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx,
		).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	runner := newRunner(db)

	require.NoError(t, runner.Run(ctx))
	require.NoError(t, runner.Run(ctx))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrationRunner_PreexistingSchema(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	// A database created before migrations were tracked.
	_, err := db.Exec(`CREATE TABLE events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticketmaster_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		event_date TEXT NOT NULL,
		venue TEXT, city TEXT, url TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	require.NoError(t, err)

	require.NoError(t, newRunner(db).Run(ctx))

	var version int
	require.NoError(t, db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestMigrationRunner_AvailabilityCheck(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, newRunner(db).Run(ctx))

	_, err := db.Exec(`INSERT INTO events (ticketmaster_id, name, event_date) VALUES ('X', 'X', '2026-01-01')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO price_snapshots (event_id, currency, availability) VALUES (1, 'CAD', 'maybe')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECK constraint failed")
}

func TestMigrationRunner_ForeignKeysEnabled(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	db.SetMaxOpenConns(1)
	require.NoError(t, newRunner(db).Run(ctx))

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrationRunner_LogsAppliedMigrations(t *testing.T) {
	db := openTestDB(t)
	var logs bytes.Buffer
	runner := NewMigrationRunner(db, slog.New(slog.NewTextHandler(&logs, nil)))

	require.NoError(t, runner.Run(context.Background()))
	assert.Contains(t, logs.String(), "schema migration applied")
	assert.Contains(t, logs.String(), "name=events_and_price_snapshots")

	logs.Reset()
	require.NoError(t, runner.Run(context.Background()))
	assert.NotContains(t, logs.String(), "schema migration applied")
}

func TestMigrationRunner_CancelledContext(t *testing.T) {
	db := openTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newRunner(db).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
