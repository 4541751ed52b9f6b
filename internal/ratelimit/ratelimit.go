// Package ratelimit implements a sliding-window request counter keyed by
// an opaque identifier.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter bounds accepted operations per identifier within a trailing
// window. State is process-local and in memory; stale identifiers are
// evicted lazily on their next check, never swept. Safe for concurrent use.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu       sync.Mutex
	requests map[string][]time.Time

	now func() time.Time // overridable in tests
}

// New returns a Limiter allowing maxRequests per identifier within window.
func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
		now:         time.Now,
	}
}

// Allow prunes timestamps that have left the window for id, then reports
// whether another request fits. A denied request is not recorded, so
// hammering a saturated identifier does not extend its wait.
func (l *Limiter) Allow(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	valid := l.prune(id, now)

	if len(valid) >= l.maxRequests {
		l.requests[id] = valid
		return false
	}

	l.requests[id] = append(valid, now)
	return true
}

// RemainingTime returns how long until the next request for id would be
// allowed: zero when under the limit, otherwise the time until the oldest
// retained timestamp exits the window.
func (l *Limiter) RemainingTime(id string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	valid := l.prune(id, now)
	if valid == nil {
		return 0
	}
	l.requests[id] = valid

	if len(valid) < l.maxRequests {
		return 0
	}

	oldest := valid[0]
	for _, t := range valid[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	if d := oldest.Add(l.window).Sub(now); d > 0 {
		return d
	}
	return 0
}

// prune drops timestamps at or before the window cutoff. Caller holds l.mu.
func (l *Limiter) prune(id string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	times := l.requests[id]
	valid := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(l.requests, id)
		return nil
	}
	return valid
}
