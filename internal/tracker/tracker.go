// Package tracker runs the search, detail, store and report pipeline
// against a Discovery API client and an event store.
package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/runnerr0/tickethawk/internal/metrics"
	"github.com/runnerr0/tickethawk/internal/model"
	"github.com/runnerr0/tickethawk/internal/ticketmaster"
)

// Defaults for a Query.
const (
	DefaultKeyword = "concert"
	DefaultRecent  = 5
)

// EventSource is the subset of the Discovery API client the tracker uses.
type EventSource interface {
	SearchEvents(ctx context.Context, keyword, city string) ([]ticketmaster.APIEvent, error)
	GetEventDetails(ctx context.Context, externalID string) (*ticketmaster.APIEvent, error)
}

// Store is the subset of storage operations the tracker uses.
type Store interface {
	AddEvent(ctx context.Context, event *model.Event) (int64, error)
	GetEventByExternalID(ctx context.Context, externalID string) (*model.Event, error)
	AddPriceSnapshot(ctx context.Context, snap *model.PriceSnapshot) (int64, error)
	GetRecentSnapshots(ctx context.Context, eventID int64, limit int) ([]model.PriceSnapshot, error)
}

// Outcome describes how a run ended.
type Outcome string

const (
	// OutcomeTracked means a snapshot was recorded.
	OutcomeTracked Outcome = "tracked"
	// OutcomeNoEvents means the search returned nothing.
	OutcomeNoEvents Outcome = "no_events"
	// OutcomeNotFound means the first search hit had no detail record.
	OutcomeNotFound Outcome = "not_found"
)

// Query selects what to search for. An empty City searches every city in
// the client's country.
type Query struct {
	Keyword string
	City    string
	Recent  int
}

func (q Query) withDefaults() Query {
	if q.Keyword == "" {
		q.Keyword = DefaultKeyword
	}
	if q.Recent <= 0 {
		q.Recent = DefaultRecent
	}
	return q
}

// Summary is the result of one run.
type Summary struct {
	RunID        string
	Outcome      Outcome
	DatabasePath string
	Found        int

	Event      model.Event
	Existing   bool
	SnapshotID int64
	Snapshots  []model.PriceSnapshot
}

// Tracker runs the pipeline. It does not own the client or the store.
type Tracker struct {
	client          EventSource
	store           Store
	logger          *slog.Logger
	recorder        metrics.Recorder
	out             io.Writer
	defaultCurrency string
	dbPath          string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(t *Tracker) { t.recorder = r }
}

// WithOutput sets where the first search hit is printed.
func WithOutput(w io.Writer) Option {
	return func(t *Tracker) { t.out = w }
}

// WithDefaultCurrency sets the currency used when a price range has none.
func WithDefaultCurrency(code string) Option {
	return func(t *Tracker) {
		if code != "" {
			t.defaultCurrency = code
		}
	}
}

// WithDatabasePath records the store location for the summary.
func WithDatabasePath(path string) Option {
	return func(t *Tracker) { t.dbPath = path }
}

// New creates a Tracker.
func New(client EventSource, store Store, opts ...Option) *Tracker {
	t := &Tracker{
		client:          client,
		store:           store,
		logger:          slog.Default(),
		recorder:        metrics.NoopRecorder{},
		out:             io.Discard,
		defaultCurrency: "CAD",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run searches for q, stores the first hit if it is new, and records a
// price snapshot for it. A search with no results or a first hit with no
// detail record ends the run early without an error.
func (t *Tracker) Run(ctx context.Context, q Query) (*Summary, error) {
	q = q.withDefaults()

	sum := &Summary{RunID: uuid.NewString(), DatabasePath: t.dbPath}
	logger := t.logger.With("run_id", sum.RunID)

	logger.Debug("searching events", "keyword", q.Keyword, "city", q.City)
	events, err := t.client.SearchEvents(ctx, q.Keyword, q.City)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	sum.Found = len(events)
	if len(events) == 0 {
		logger.Warn("no events found, try a different search term or city")
		sum.Outcome = OutcomeNoEvents
		return sum, nil
	}
	logger.Info("events found", "count", len(events))

	first := events[0]
	ticketmaster.FormatEvent(t.out, first)

	logger.Debug("fetching event details", "event_id", first.ID)
	details, err := t.client.GetEventDetails(ctx, first.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch details: %w", err)
	}
	if details == nil {
		logger.Error("could not fetch event details", "event_id", first.ID)
		sum.Outcome = OutcomeNotFound
		return sum, nil
	}

	event := ticketmaster.ToEvent(*details)
	existing, err := t.store.GetEventByExternalID(ctx, event.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("lookup event: %w", err)
	}
	if existing != nil {
		logger.Info("event already tracked", "id", existing.ID)
		event = *existing
		sum.Existing = true
	} else {
		id, err := t.store.AddEvent(ctx, &event)
		if err != nil {
			return nil, fmt.Errorf("add event: %w", err)
		}
		event.ID = id
		t.recorder.IncEventsAdded()
		logger.Info("event added", "id", id)
	}
	sum.Event = event

	snap := ticketmaster.ToPriceSnapshot(*details, event.ID, t.defaultCurrency)
	snapID, err := t.store.AddPriceSnapshot(ctx, &snap)
	if err != nil {
		return nil, fmt.Errorf("add snapshot: %w", err)
	}
	t.recorder.IncSnapshots(string(snap.Availability))
	sum.SnapshotID = snapID
	logger.Info("price snapshot recorded", "id", snapID, "availability", snap.Availability)

	recent, err := t.store.GetRecentSnapshots(ctx, event.ID, q.Recent)
	if err != nil {
		return nil, fmt.Errorf("recent snapshots: %w", err)
	}
	sum.Snapshots = recent
	sum.Outcome = OutcomeTracked
	logger.Debug("recent snapshots loaded", "count", len(recent))

	return sum, nil
}
