package ticketmaster

import (
	"fmt"
	"io"
	"strings"

	"github.com/runnerr0/tickethawk/internal/model"
)

const rule = "========================================"

// FormatEvent writes a short human-readable description of e to w.
func FormatEvent(w io.Writer, e APIEvent) {
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Event: %s\n", e.Name)
	fmt.Fprintf(&b, "Date:  %s\n", e.Dates.Start.LocalDate)
	if venue, ok := e.FirstVenue(); ok {
		fmt.Fprintf(&b, "Venue: %s, %s\n", venue.Name, venue.City.Name)
	}
	if pr, ok := e.FirstPriceRange(); ok {
		label := model.PriceSnapshot{MinPrice: pr.Min, MaxPrice: pr.Max, Currency: pr.Currency}.PriceLabel()
		fmt.Fprintf(&b, "Price: %s\n", strings.TrimSpace(label))
	} else {
		fmt.Fprintln(&b, "Price: Not available / Sold out")
	}
	fmt.Fprintf(&b, "URL:   %s\n", e.URL)
	fmt.Fprintln(&b, rule)

	io.WriteString(w, b.String()) //nolint:errcheck
}
