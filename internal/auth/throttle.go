package auth

import (
	"context"
	"time"
)

const attemptKeyPrefix = "attempts:"

// Counter is the subset of the cache client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Delete(ctx context.Context, keys ...string) error
}

// AttemptLimiter counts attempts per key inside a fixed window. When the
// backing store is unavailable every attempt is allowed.
type AttemptLimiter struct {
	counter Counter
	scope   string
	max     int64
	window  time.Duration
}

// NewAttemptLimiter allows max attempts per window for each key under scope.
// A max of zero or less disables limiting.
func NewAttemptLimiter(counter Counter, scope string, max int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		counter: counter,
		scope:   scope,
		max:     int64(max),
		window:  window,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.counter == nil || l.max <= 0 {
		return true
	}
	n, err := l.counter.Incr(ctx, l.key(key), l.window)
	if err != nil {
		return true
	}
	return n <= l.max
}

// Reset clears the counter for key, e.g. after a successful login.
func (l *AttemptLimiter) Reset(ctx context.Context, key string) {
	if l == nil || l.counter == nil {
		return
	}
	_ = l.counter.Delete(ctx, l.key(key))
}

func (l *AttemptLimiter) key(k string) string {
	return attemptKeyPrefix + l.scope + ":" + k
}
