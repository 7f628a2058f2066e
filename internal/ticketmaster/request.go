package ticketmaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/runnerr0/tickethawk/internal/metrics"
)

// APIError is a non-2xx response from the Discovery API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ticketmaster api error %d: %s", e.StatusCode, e.Message)
}

// NetworkError is a failure to reach the Discovery API at all: DNS,
// connection refused, TLS, timeout, or a malformed base URL.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// errNotFound is internal; public methods turn it into a nil result.
var errNotFound = errors.New("not found")

// get waits for the spacer, performs a GET against path and decodes a 2xx
// body into result. endpoint names the call for logs and metrics. When
// allowNotFound is set, a 404 yields errNotFound instead of an APIError.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, allowNotFound bool, result any) error {
	waited, err := c.spacer.Wait(ctx)
	if err != nil {
		return err
	}
	if waited > 0 {
		c.logger.Debug("rate limiting", "endpoint", endpoint, "waited", waited)
	}
	c.recorder.ObserveRateLimitWait(waited)

	if query == nil {
		query = url.Values{}
	}
	query.Set("apikey", c.apiKey)

	fullURL := c.baseURL + path
	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(fullURL)
	elapsed := time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.recorder.ObserveRequest(endpoint, metrics.OutcomeNetwork, elapsed)
		c.logger.Error("network error", "endpoint", endpoint, "error", err)
		return &NetworkError{Op: endpoint, URL: fullURL, Err: err}
	}

	status := resp.StatusCode()
	if allowNotFound && status == http.StatusNotFound {
		c.recorder.ObserveRequest(endpoint, metrics.OutcomeNotFound, elapsed)
		return errNotFound
	}

	if resp.IsError() || status < 200 || status > 299 {
		apiErr := newAPIError(status, resp.Body())
		c.recorder.ObserveRequest(endpoint, metrics.OutcomeAPIError, elapsed)
		c.logger.Error("ticketmaster api error",
			"endpoint", endpoint,
			"status", apiErr.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	c.recorder.ObserveRequest(endpoint, metrics.OutcomeOK, elapsed)

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", endpoint, err)
	}
	return nil
}

// newAPIError extracts the structured fault message when the body carries
// one.
func newAPIError(status int, body []byte) *APIError {
	msg := http.StatusText(status)

	var fault faultResponse
	if json.Unmarshal(body, &fault) == nil {
		switch {
		case fault.Fault.FaultString != "":
			msg = fault.Fault.FaultString
		case len(fault.Errors) > 0 && fault.Errors[0].Detail != "":
			msg = fault.Errors[0].Detail
		}
	}

	return &APIError{StatusCode: status, Message: msg, Body: body}
}
