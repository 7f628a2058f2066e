package storage

import "database/sql"

// migrateV001 creates the events and price_snapshots tables. Every
// statement uses IF NOT EXISTS so it is safe against a database created
// before migrations were tracked.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			ticketmaster_id TEXT NOT NULL UNIQUE,
			name            TEXT NOT NULL,
			event_date      TEXT NOT NULL,
			venue           TEXT,
			city            TEXT,
			url             TEXT,
			is_active       BOOLEAN NOT NULL DEFAULT 1,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// checked_at carries milliseconds so consecutive snapshots of the
		// same event order correctly.
		`CREATE TABLE IF NOT EXISTS price_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id     INTEGER NOT NULL REFERENCES events(id),
			min_price    REAL,
			max_price    REAL,
			currency     TEXT NOT NULL,
			availability TEXT NOT NULL CHECK (availability IN ('available', 'limited', 'sold_out')),
			checked_at   DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_active_date       ON events(is_active, event_date)`,
		`CREATE INDEX IF NOT EXISTS idx_price_snapshots_event_ts ON price_snapshots(event_id, checked_at)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
