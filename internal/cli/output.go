package cli

import "github.com/runnerr0/tickethawk/internal/model"

type eventJSON struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"ticketmaster_id"`
	Name       string `json:"name"`
	EventDate  string `json:"event_date"`
	Venue      string `json:"venue,omitempty"`
	City       string `json:"city,omitempty"`
	URL        string `json:"url,omitempty"`
	Active     bool   `json:"is_active"`
}

type snapshotJSON struct {
	ID           int64    `json:"id"`
	EventID      int64    `json:"event_id"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	Currency     string   `json:"currency"`
	Availability string   `json:"availability"`
	CheckedAt    string   `json:"checked_at"`
}

func toEventJSON(e model.Event) eventJSON {
	return eventJSON{
		ID:         e.ID,
		ExternalID: e.ExternalID,
		Name:       e.Name,
		EventDate:  e.EventDate,
		Venue:      e.Venue,
		City:       e.City,
		URL:        e.URL,
		Active:     e.Active,
	}
}

func toSnapshotJSON(s model.PriceSnapshot) snapshotJSON {
	return snapshotJSON{
		ID:           s.ID,
		EventID:      s.EventID,
		MinPrice:     s.MinPrice,
		MaxPrice:     s.MaxPrice,
		Currency:     s.Currency,
		Availability: string(s.Availability),
		CheckedAt:    formatTime(s.CheckedAt),
	}
}
