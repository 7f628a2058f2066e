package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is one versioned schema step. Apply runs inside the
// transaction that also records the version.
type migration struct {
	Version int
	Name    string
	Apply   func(tx *sql.Tx) error
}

// schemaMigrations lists every migration in version order.
var schemaMigrations = []migration{
	{Version: 1, Name: "events_and_price_snapshots", Apply: migrateV001},
}

// MigrationRunner brings a database up to the latest schema version.
type MigrationRunner struct {
	db         *sql.DB
	logger     *slog.Logger
	migrations []migration
}

// NewMigrationRunner returns a runner for db. A nil logger uses slog.Default.
func NewMigrationRunner(db *sql.DB, logger *slog.Logger) *MigrationRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &MigrationRunner{db: db, logger: logger, migrations: schemaMigrations}
}

// Run applies every migration newer than the recorded schema version.
// Running it against an up-to-date database changes nothing.
func (r *MigrationRunner) Run(ctx context.Context) error {
	pragmas := []struct{ stmt, what string }{
		{"PRAGMA journal_mode = WAL", "set WAL mode"},
		{"PRAGMA foreign_keys = ON", "enable foreign keys"},
		{`CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, "create schema_migrations table"},
	}
	for _, p := range pragmas {
		if _, err := r.db.ExecContext(ctx, p.stmt); err != nil {
			return fmt.Errorf("%s: %w", p.what, err)
		}
	}

	current, err := r.currentVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	pending := 0
	for _, m := range r.migrations {
		if m.Version <= current {
			continue
		}
		if err := r.apply(ctx, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		r.logger.Info("schema migration applied", "version", m.Version, "name", m.Name)
		pending++
	}

	if pending == 0 {
		r.logger.Debug("schema up to date", "version", current)
	}
	return nil
}

// currentVersion returns the highest recorded version, or 0 for a new
// database.
func (r *MigrationRunner) currentVersion(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}

func (r *MigrationRunner) apply(ctx context.Context, m migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := m.Apply(tx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		m.Version, m.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}
