// Package ratelimit enforces a minimum gap between outbound requests.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval keeps callers under 5 requests per second.
const DefaultInterval = 200 * time.Millisecond

// Spacer guarantees that consecutive calls to Wait return at least Interval
// apart. It has no burst allowance: after an idle period the next call
// proceeds immediately, and every call after that is spaced out.
//
// Concurrent callers are serialized on the internal mutex, so the spacing
// holds across goroutines as well.
type Spacer struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSpacer returns a Spacer with the given minimum interval. A non-positive
// interval falls back to DefaultInterval.
func NewSpacer(interval time.Duration) *Spacer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Spacer{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Interval returns the configured minimum spacing.
func (s *Spacer) Interval() time.Duration {
	return s.interval
}

// Wait blocks until at least Interval has passed since the previous call
// returned, then records the current time as the last request time. It
// returns how long the caller was suspended. If ctx is cancelled while
// waiting, the last request time is left untouched and ctx.Err() is
// returned.
func (s *Spacer) Wait(ctx context.Context) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var waited time.Duration
	if !s.last.IsZero() {
		elapsed := s.now().Sub(s.last)
		if elapsed < s.interval {
			waited = s.interval - elapsed
			if err := s.sleep(ctx, waited); err != nil {
				return 0, err
			}
		}
	}

	s.last = s.now()
	return waited, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
