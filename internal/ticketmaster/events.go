package ticketmaster

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

var (
	// ErrEmptyKeyword is returned by SearchEvents for a blank keyword.
	ErrEmptyKeyword = errors.New("search keyword is required")
	// ErrEmptyEventID is returned by GetEventDetails for a blank id.
	ErrEmptyEventID = errors.New("event id is required")
)

// Search fetches one page of events matching opts, sorted by ascending
// date and filtered to the client's country.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResponse, error) {
	if opts.Keyword == "" {
		return nil, ErrEmptyKeyword
	}

	query := url.Values{}
	query.Set("keyword", opts.Keyword)
	query.Set("countryCode", c.countryCode)
	query.Set("sort", "date,asc")
	if opts.City != "" {
		query.Set("city", opts.City)
	}
	if opts.Size > 0 {
		query.Set("size", strconv.Itoa(opts.Size))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}

	if opts.City != "" {
		c.logger.Info("searching ticketmaster", "keyword", opts.Keyword, "city", opts.City)
	} else {
		c.logger.Info("searching ticketmaster", "keyword", opts.Keyword)
	}

	var resp SearchResponse
	if err := c.get(ctx, "search", "/events.json", query, false, &resp); err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return &resp, nil
}

// SearchEvents returns the first page of events for keyword, optionally
// limited to city. Zero matches is an empty slice, not an error.
func (c *Client) SearchEvents(ctx context.Context, keyword, city string) ([]APIEvent, error) {
	resp, err := c.Search(ctx, SearchOptions{Keyword: keyword, City: city})
	if err != nil {
		return nil, err
	}

	events := resp.Events()
	c.logger.Info("search complete", "count", len(events))
	return events, nil
}

// GetEventDetails fetches a single event. It returns nil, nil when the
// API reports the event does not exist.
func (c *Client) GetEventDetails(ctx context.Context, externalID string) (*APIEvent, error) {
	if externalID == "" {
		return nil, ErrEmptyEventID
	}

	c.logger.Info("fetching event details", "event_id", externalID)

	var ev APIEvent
	err := c.get(ctx, "event_details", "/events/"+url.PathEscape(externalID)+".json", nil, true, &ev)
	if errors.Is(err, errNotFound) {
		c.logger.Warn("event not found", "event_id", externalID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", externalID, err)
	}

	c.logger.Info("retrieved event details", "event_id", ev.ID, "name", ev.Name)
	return &ev, nil
}
