package ticketmaster

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEvent(t *testing.T) {
	var buf bytes.Buffer
	FormatEvent(&buf, decodeEvent(t, detailBody))

	out := buf.String()
	assert.Contains(t, out, "Event: Symphony Under the Stars")
	assert.Contains(t, out, "Date:  2026-11-03")
	assert.Contains(t, out, "Venue: Massey Hall, Toronto")
	assert.Contains(t, out, "Price: $45.50 - $120.00 CAD")
	assert.Contains(t, out, "URL:   https://www.ticketmaster.ca/event/G5vYZ9K1")
}

func TestFormatEvent_NoPriceNoVenue(t *testing.T) {
	var buf bytes.Buffer
	FormatEvent(&buf, APIEvent{ID: "X", Name: "Bare"})

	out := buf.String()
	assert.Contains(t, out, "Price: Not available / Sold out")
	assert.NotContains(t, out, "Venue:")
}

func TestFormatEvent_RangeWithoutPrices(t *testing.T) {
	var buf bytes.Buffer
	FormatEvent(&buf, APIEvent{Name: "Partial", PriceRanges: []APIPriceRange{{Currency: "CAD"}}})

	assert.Contains(t, buf.String(), "Price: No price available")
}
