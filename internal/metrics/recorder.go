package metrics

import "time"

// Outcome labels for API requests.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeAPIError = "api_error"
	OutcomeNetwork  = "network_error"
)

// Recorder receives pipeline measurements.
type Recorder interface {
	ObserveRequest(endpoint, outcome string, d time.Duration)
	ObserveRateLimitWait(d time.Duration)
	IncEventsAdded()
	IncSnapshots(availability string)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, string, time.Duration) {}
func (NoopRecorder) ObserveRateLimitWait(time.Duration)           {}
func (NoopRecorder) IncEventsAdded()                              {}
func (NoopRecorder) IncSnapshots(string)                          {}
