package tracker

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Print writes the closing report for s to w.
func (s *Summary) Print(w io.Writer) {
	var b strings.Builder

	switch s.Outcome {
	case OutcomeNoEvents:
		fmt.Fprintln(&b, "No events found. Try a different search term or city.")
	case OutcomeNotFound:
		fmt.Fprintln(&b, "Could not fetch event details.")
	default:
		fmt.Fprintf(&b, "Found %d snapshot(s):\n", len(s.Snapshots))
		for _, snap := range s.Snapshots {
			fmt.Fprintf(&b, "  - %s: %s (%s)\n",
				snap.CheckedAt.Local().Format(time.DateTime), snap.PriceLabel(), snap.Availability)
		}
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Summary:")
		if s.DatabasePath != "" {
			fmt.Fprintf(&b, "  Database:   %s\n", s.DatabasePath)
		}
		status := "added"
		if s.Existing {
			status = "already tracked"
		}
		fmt.Fprintf(&b, "  Event:      %s (%s)\n", s.Event.Name, status)
		fmt.Fprintf(&b, "  Date:       %s\n", s.Event.EventDate)
		fmt.Fprintf(&b, "  Snapshots:  %d\n", len(s.Snapshots))
	}

	io.WriteString(w, b.String()) //nolint:errcheck
}
