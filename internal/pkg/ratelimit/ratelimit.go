// Package ratelimit provides a sliding-window request limiter used to
// cap expensive endpoints, in particular AI recipe generation.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts requests per key within a rolling window. Keys are
// whatever the caller chooses, typically a client IP.
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

// Allow records a request for key and reports whether it is within the
// limit. Denied requests are not recorded.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	valid := l.prune(key, time.Now())
	if len(valid) >= l.limit {
		l.requests[key] = valid
		return false
	}

	l.requests[key] = append(valid, time.Now())
	return true
}

// Remaining reports how many requests key has left in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.limit - len(l.prune(key, time.Now()))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ResetAt returns when the oldest counted request for key falls out of
// the window. With no counted requests it returns now.
func (l *Limiter) ResetAt(key string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	valid := l.prune(key, time.Now())
	if len(valid) == 0 {
		return time.Now()
	}
	return valid[0].Add(l.window)
}

// Cleanup drops keys with no requests inside the window.
func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key := range l.requests {
		if valid := l.prune(key, now); len(valid) == 0 {
			delete(l.requests, key)
		} else {
			l.requests[key] = valid
		}
	}
}

// StartCleanup runs Cleanup on a ticker for the life of the process.
func (l *Limiter) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			l.Cleanup()
		}
	}()
}

// prune returns key's requests still inside the window. Caller holds mu.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	valid := l.requests[key][:0:0]
	for _, t := range l.requests[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}
