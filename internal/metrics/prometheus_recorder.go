package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "tickethawk"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	requests        *prom.CounterVec
	requestDuration *prom.HistogramVec
	rateLimitWait   prom.Histogram
	eventsAdded     prom.Counter
	snapshots       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Discovery API requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Discovery API request latency, excluding rate limit waits",
			Buckets:   prom.DefBuckets,
		}, []string{"endpoint"}),
		rateLimitWait: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "ratelimit_wait_seconds",
			Help:      "Time callers spent suspended by the request spacer",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.15, 0.2, 0.5, 1},
		}),
		eventsAdded: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "events_added_total",
			Help:      "Events inserted into the local store",
		}),
		snapshots: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "price_snapshots_total",
			Help:      "Price snapshots recorded by availability",
		}, []string{"availability"}),
	}
	reg.MustRegister(pr.requests, pr.requestDuration, pr.rateLimitWait, pr.eventsAdded, pr.snapshots)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveRequest(endpoint, outcome string, d time.Duration) {
	p.requests.WithLabelValues(endpoint, outcome).Inc()
	p.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRateLimitWait(d time.Duration) {
	p.rateLimitWait.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncEventsAdded() { p.eventsAdded.Inc() }

func (p *PrometheusRecorder) IncSnapshots(availability string) {
	p.snapshots.WithLabelValues(availability).Inc()
}

// WriteTextfile writes the current metric values in the text exposition
// format, atomically replacing path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
