package ticketmaster

import "github.com/runnerr0/tickethawk/internal/model"

// ToEvent converts an APIEvent to model.Event. The first embedded venue,
// if any, supplies the venue and city. New events are always active.
func ToEvent(e APIEvent) model.Event {
	ev := model.Event{
		ExternalID: e.ID,
		Name:       e.Name,
		EventDate:  e.Dates.Start.LocalDate,
		URL:        e.URL,
		Active:     true,
	}
	if venue, ok := e.FirstVenue(); ok {
		ev.Venue = venue.Name
		ev.City = venue.City.Name
	}
	return ev
}

// ToPriceSnapshot converts the first price range of e into a snapshot for
// the stored event eventID. An event without any price range is recorded
// as sold out. A range missing min or max leaves that price nil. fallbackCurrency is used only when the range has no
// currency of its own.
func ToPriceSnapshot(e APIEvent, eventID int64, fallbackCurrency string) model.PriceSnapshot {
	snap := model.PriceSnapshot{
		EventID:      eventID,
		Currency:     fallbackCurrency,
		Availability: model.AvailabilityAvailable,
	}

	pr, ok := e.FirstPriceRange()
	if !ok {
		snap.Availability = model.AvailabilitySoldOut
		return snap
	}

	snap.MinPrice = copyPrice(pr.Min)
	snap.MaxPrice = copyPrice(pr.Max)
	if pr.Currency != "" {
		snap.Currency = pr.Currency
	}
	return snap
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
