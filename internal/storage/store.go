package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/runnerr0/tickethawk/internal/model"
)

// DefaultRecentLimit is the number of snapshots callers show when the
// user does not ask for a specific count.
const DefaultRecentLimit = 10

// ErrNegativeLimit is returned by GetRecentSnapshots for limit < 0.
var ErrNegativeLimit = errors.New("snapshot limit must not be negative")

// Store defines the persistence operations for tracked events and their
// price snapshots.
type Store interface {
	AddEvent(ctx context.Context, event *model.Event) (int64, error)
	GetActiveEvents(ctx context.Context) ([]model.Event, error)
	GetEventByExternalID(ctx context.Context, externalID string) (*model.Event, error)
	AddPriceSnapshot(ctx context.Context, snap *model.PriceSnapshot) (int64, error)
	GetRecentSnapshots(ctx context.Context, eventID int64, limit int) ([]model.PriceSnapshot, error)
	GetLatestSnapshot(ctx context.Context, eventID int64) (*model.PriceSnapshot, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// Stats holds aggregate counts for the status report.
type Stats struct {
	TotalEvents    int64
	ActiveEvents   int64
	TotalSnapshots int64
	NewestSnapshot time.Time
}

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	ownsDB bool

	mu     sync.Mutex
	closed bool

	insertEvent     *sql.Stmt
	getEventByExtID *sql.Stmt
	insertSnapshot  *sql.Stmt
	recentSnapshots *sql.Stmt
	getActiveEvents *sql.Stmt
}

const eventColumns = `id, ticketmaster_id, name, event_date, venue, city, url, is_active`

const snapshotColumns = `id, event_id, min_price, max_price, currency, availability, checked_at`

// NewSQLiteStore creates a SQLiteStore from an already-opened and migrated
// database. The caller keeps ownership of db; Close releases only the
// prepared statements.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		s.closeStatements()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertEvent, err = s.db.Prepare(`
		INSERT INTO events (ticketmaster_id, name, event_date, venue, city, url, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getEventByExtID, err = s.db.Prepare(`
		SELECT ` + eventColumns + ` FROM events WHERE ticketmaster_id = ?
	`)
	if err != nil {
		return err
	}

	s.getActiveEvents, err = s.db.Prepare(`
		SELECT ` + eventColumns + ` FROM events
		WHERE is_active = 1
		ORDER BY event_date ASC, id ASC
	`)
	if err != nil {
		return err
	}

	s.insertSnapshot, err = s.db.Prepare(`
		INSERT INTO price_snapshots (event_id, min_price, max_price, currency, availability)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, checked_at
	`)
	if err != nil {
		return err
	}

	s.recentSnapshots, err = s.db.Prepare(`
		SELECT ` + snapshotColumns + ` FROM price_snapshots
		WHERE event_id = ?
		ORDER BY checked_at DESC, id DESC
		LIMIT ?
	`)
	if err != nil {
		return err
	}

	return nil
}

// Path returns the database file the store was opened from, or "" when it
// wraps a caller-supplied handle.
func (s *SQLiteStore) Path() string {
	return s.path
}

// AddEvent inserts event and sets its ID. It does not check for an
// existing row with the same external id: callers look up with
// GetEventByExternalID first, and a duplicate surfaces the UNIQUE
// constraint error from SQLite.
func (s *SQLiteStore) AddEvent(ctx context.Context, event *model.Event) (int64, error) {
	res, err := s.insertEvent.ExecContext(ctx,
		event.ExternalID, event.Name, event.EventDate,
		nullString(event.Venue), nullString(event.City), nullString(event.URL),
		event.Active,
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	event.ID = id
	return id, nil
}

// GetActiveEvents returns every active event, earliest date first.
func (s *SQLiteStore) GetActiveEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.getActiveEvents.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query active events: %w", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventByExternalID returns the event with the given Ticketmaster id,
// or nil, nil if it is not tracked.
func (s *SQLiteStore) GetEventByExternalID(ctx context.Context, externalID string) (*model.Event, error) {
	e, err := scanEvent(s.getEventByExtID.QueryRowContext(ctx, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event %s: %w", externalID, err)
	}
	return e, nil
}

// AddPriceSnapshot appends a snapshot and sets its ID and CheckedAt from
// the stored row. Snapshots are never updated.
func (s *SQLiteStore) AddPriceSnapshot(ctx context.Context, snap *model.PriceSnapshot) (int64, error) {
	if !snap.Availability.Valid() {
		return 0, fmt.Errorf("insert price snapshot: invalid availability %q", snap.Availability)
	}

	var checkedAt string
	err := s.insertSnapshot.QueryRowContext(ctx,
		snap.EventID, nullFloat(snap.MinPrice), nullFloat(snap.MaxPrice),
		snap.Currency, string(snap.Availability),
	).Scan(&snap.ID, &checkedAt)
	if err != nil {
		return 0, fmt.Errorf("insert price snapshot: %w", err)
	}

	snap.CheckedAt, _ = parseTimestamp(checkedAt)
	return snap.ID, nil
}

// GetRecentSnapshots returns up to limit snapshots for eventID, newest
// first. A zero limit returns an empty slice.
func (s *SQLiteStore) GetRecentSnapshots(ctx context.Context, eventID int64, limit int) ([]model.PriceSnapshot, error) {
	if limit < 0 {
		return nil, ErrNegativeLimit
	}
	if limit == 0 {
		return []model.PriceSnapshot{}, nil
	}

	rows, err := s.recentSnapshots.QueryContext(ctx, eventID, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []model.PriceSnapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}

// GetLatestSnapshot returns the newest snapshot for eventID, or nil, nil
// if none has been recorded.
func (s *SQLiteStore) GetLatestSnapshot(ctx context.Context, eventID int64) (*model.PriceSnapshot, error) {
	snap, err := scanSnapshot(s.recentSnapshots.QueryRowContext(ctx, eventID, 1))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return snap, nil
}

// GetStats returns aggregate counts about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_active), 0) FROM events",
	).Scan(&stats.TotalEvents, &stats.ActiveEvents)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM price_snapshots").Scan(&stats.TotalSnapshots)
	if err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}

	if stats.TotalSnapshots > 0 {
		var newest string
		err = s.db.QueryRowContext(ctx, "SELECT MAX(checked_at) FROM price_snapshots").Scan(&newest)
		if err != nil {
			return nil, fmt.Errorf("newest snapshot: %w", err)
		}
		stats.NewestSnapshot, _ = parseTimestamp(newest)
	}

	return stats, nil
}

// Close releases the prepared statements and, for stores created by Open,
// the database itself. Calling Close more than once is a no-op.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.closeStatements()
	if s.ownsDB {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) closeStatements() {
	stmts := []*sql.Stmt{
		s.insertEvent, s.getEventByExtID, s.getActiveEvents,
		s.insertSnapshot, s.recentSnapshots,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(r rowScanner) (*model.Event, error) {
	var e model.Event
	var venue, city, url sql.NullString
	if err := r.Scan(
		&e.ID, &e.ExternalID, &e.Name, &e.EventDate,
		&venue, &city, &url, &e.Active,
	); err != nil {
		return nil, err
	}
	e.Venue = venue.String
	e.City = city.String
	e.URL = url.String
	return &e, nil
}

func scanSnapshot(r rowScanner) (*model.PriceSnapshot, error) {
	var snap model.PriceSnapshot
	var minPrice, maxPrice sql.NullFloat64
	var availability, checkedAt string
	if err := r.Scan(
		&snap.ID, &snap.EventID, &minPrice, &maxPrice,
		&snap.Currency, &availability, &checkedAt,
	); err != nil {
		return nil, err
	}
	if minPrice.Valid {
		snap.MinPrice = &minPrice.Float64
	}
	if maxPrice.Valid {
		snap.MaxPrice = &maxPrice.Float64
	}
	snap.Availability = model.Availability(availability)
	snap.CheckedAt, _ = parseTimestamp(checkedAt)
	return &snap, nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999999",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
