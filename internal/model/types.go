package model

import (
	"fmt"
	"time"
)

// Availability describes how easy it is to buy tickets for an event at the
// time a snapshot was taken.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityLimited   Availability = "limited"
	AvailabilitySoldOut   Availability = "sold_out"
)

// Valid reports whether a is one of the known availability values.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityLimited, AvailabilitySoldOut:
		return true
	}
	return false
}

// Event is a ticketed event tracked locally. ExternalID is the
// Ticketmaster identifier and is unique across the store.
type Event struct {
	ID         int64
	ExternalID string
	Name       string
	EventDate  string // local date as reported by the source, e.g. 2026-11-03
	Venue      string
	City       string
	URL        string
	Active     bool
}

// PriceSnapshot is one append-only observation of an event's price range
// and availability. CheckedAt is assigned by the store.
type PriceSnapshot struct {
	ID           int64
	EventID      int64
	MinPrice     *float64
	MaxPrice     *float64
	Currency     string
	Availability Availability
	CheckedAt    time.Time
}

// PriceLabel renders the price range for display.
func (s PriceSnapshot) PriceLabel() string {
	if s.MinPrice == nil {
		return "No price available"
	}
	if s.MaxPrice == nil {
		return fmt.Sprintf("$%.2f %s", *s.MinPrice, s.Currency)
	}
	return fmt.Sprintf("$%.2f - $%.2f %s", *s.MinPrice, *s.MaxPrice, s.Currency)
}
