package ticketmaster

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/runnerr0/tickethawk/internal/metrics"
	"github.com/runnerr0/tickethawk/internal/ratelimit"
)

// DefaultBaseURL is the production Discovery API.
const DefaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

// DefaultCountryCode is applied to every search.
const DefaultCountryCode = "CA"

// Client provides access to the Discovery API. Every request passes
// through a shared Spacer, so a Client must be reused rather than created
// per call.
type Client struct {
	baseURL     string
	apiKey      string
	countryCode string

	http     *resty.Client
	spacer   *ratelimit.Spacer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new Discovery API client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		countryCode: DefaultCountryCode,
		http:        resty.New().SetTimeout(30 * time.Second),
		spacer:      ratelimit.NewSpacer(ratelimit.DefaultInterval),
		logger:      slog.Default(),
		recorder:    metrics.NoopRecorder{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http.SetHeader("Accept", "application/json")
	return c
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithHTTPClient uses hc as the underlying transport. Its timeout is kept.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// WithMinInterval sets the minimum spacing between requests.
func WithMinInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.spacer = ratelimit.NewSpacer(d)
	}
}

// WithCountryCode overrides the country filter applied to searches.
func WithCountryCode(code string) ClientOption {
	return func(c *Client) {
		if code != "" {
			c.countryCode = code
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) ClientOption {
	return func(c *Client) {
		c.recorder = r
	}
}
