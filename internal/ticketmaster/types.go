package ticketmaster

// SearchResponse from GET /events.json
type SearchResponse struct {
	Embedded *struct {
		Events []APIEvent `json:"events"`
	} `json:"_embedded,omitempty"`
	Page *Page `json:"page,omitempty"`
}

// Events returns the embedded events, or an empty slice when the API
// reported no matches.
func (r *SearchResponse) Events() []APIEvent {
	if r.Embedded == nil || r.Embedded.Events == nil {
		return []APIEvent{}
	}
	return r.Embedded.Events
}

// Page is the pagination block of a search response.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// APIEvent represents an event from the Discovery API.
type APIEvent struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	URL         string          `json:"url"`
	Dates       APIDates        `json:"dates"`
	PriceRanges []APIPriceRange `json:"priceRanges,omitempty"`
	Embedded    *struct {
		Venues []APIVenue `json:"venues,omitempty"`
	} `json:"_embedded,omitempty"`
}

// APIDates holds the start date block of an event.
type APIDates struct {
	Start struct {
		LocalDate string `json:"localDate"`
		LocalTime string `json:"localTime,omitempty"`
	} `json:"start"`
}

// APIPriceRange is one price band. Any of Currency, Min and Max may be
// absent.
type APIPriceRange struct {
	Type     string   `json:"type,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// APIVenue is an embedded venue.
type APIVenue struct {
	Name string `json:"name"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
}

// FirstVenue returns the first embedded venue, if any.
func (e *APIEvent) FirstVenue() (APIVenue, bool) {
	if e.Embedded == nil || len(e.Embedded.Venues) == 0 {
		return APIVenue{}, false
	}
	return e.Embedded.Venues[0], true
}

// FirstPriceRange returns the first price range, if any.
func (e *APIEvent) FirstPriceRange() (APIPriceRange, bool) {
	if len(e.PriceRanges) == 0 {
		return APIPriceRange{}, false
	}
	return e.PriceRanges[0], true
}

// faultResponse covers the two error shapes the Discovery API returns:
// gateway faults (bad key, quota) and resource errors (unknown id).
type faultResponse struct {
	Fault struct {
		FaultString string `json:"faultstring"`
	} `json:"fault"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
		Status string `json:"status"`
	} `json:"errors"`
}

// SearchOptions configures a Search request.
type SearchOptions struct {
	Keyword string
	City    string
	Size    int
	Page    int
}
