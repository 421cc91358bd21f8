package ratelimit

import (
	"context"
	"time"
)

// Limiter is the interface shared by the memory and Redis stores.
type Limiter interface {
	// Allow records an attempt for the given client key and reports
	// whether it may proceed. Rejected attempts are not recorded.
	Allow(ctx context.Context, key string) (Decision, error)

	// SetLimits replaces the limit and window at runtime. Existing
	// timestamp logs are kept and re-evaluated against the new bounds.
	SetLimits(limit int, window time.Duration)
}

// Decision is the outcome of a single limit check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Remaining is the number of requests left in the current window
	// after this one.
	Remaining int

	// RetryAfter is the whole number of seconds until the client's
	// oldest retained timestamp leaves the window. Only meaningful when
	// Allowed is false; always at least 1.
	RetryAfter int
}

// Config holds the shared limiter settings.
type Config struct {
	// Limit is the maximum number of requests per client within the
	// window. Default: 60.
	Limit int

	// Window is the sliding window duration. Default: 1 minute.
	Window time.Duration

	// MaxClients caps the number of tracked clients in the memory store.
	// When a new client would exceed the cap, the longest-idle client is
	// evicted. Zero means the default of 10000.
	MaxClients int
}

// withDefaults fills zero fields with the standard values.
func (c Config) withDefaults() Config {
	if c.Limit <= 0 {
		c.Limit = 60
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	if c.MaxClients <= 0 {
		c.MaxClients = 10000
	}
	return c
}

// retryAfterSeconds converts the time until the oldest retained timestamp
// leaves the window into whole seconds, rounded up and floored at 1.
func retryAfterSeconds(oldest, now time.Time, window time.Duration) int {
	remaining := oldest.Add(window).Sub(now)
	secs := int((remaining + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
