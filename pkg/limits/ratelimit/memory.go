package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter keeps per-client timestamp logs in a mutex-guarded map.
// It is the default store for single-instance deployments.
//
// Growth is bounded two ways: a Sweeper periodically drops clients whose
// entire log has aged out of the window, and MaxClients evicts the
// longest-idle client when a new one would exceed the cap.
type MemoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLog
	config  Config

	// now is stubbed in tests.
	now func() time.Time
}

// clientLog is one client's retained request timestamps, oldest first.
type clientLog struct {
	stamps []time.Time
}

// newest returns the most recent timestamp, or the zero time for an
// empty log.
func (c *clientLog) newest() time.Time {
	if len(c.stamps) == 0 {
		return time.Time{}
	}
	return c.stamps[len(c.stamps)-1]
}

// NewMemoryLimiter creates an in-memory sliding-window limiter.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		clients: make(map[string]*clientLog),
		config:  cfg.withDefaults(),
		now:     time.Now,
	}
}

// Allow implements Limiter. It never returns an error.
func (m *MemoryLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.config.Window)

	log, ok := m.clients[key]
	if !ok {
		if len(m.clients) >= m.config.MaxClients {
			m.evictIdlestLocked()
		}
		log = &clientLog{}
		m.clients[key] = log
	}

	// Prune timestamps older than the window start.
	retained := log.stamps[:0]
	for _, ts := range log.stamps {
		if !ts.Before(cutoff) {
			retained = append(retained, ts)
		}
	}
	log.stamps = retained

	if len(log.stamps) >= m.config.Limit {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfterSeconds(log.stamps[0], now, m.config.Window),
		}, nil
	}

	log.stamps = append(log.stamps, now)
	return Decision{
		Allowed:   true,
		Remaining: m.config.Limit - len(log.stamps),
	}, nil
}

// SetLimits implements Limiter.
func (m *MemoryLimiter) SetLimits(limit int, window time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit > 0 {
		m.config.Limit = limit
	}
	if window > 0 {
		m.config.Window = window
	}
}

// Sweep removes clients whose entire log has aged out of the window and
// returns the number removed. Intended to be driven by a Sweeper.
func (m *MemoryLimiter) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.config.Window)
	removed := 0

	for key, log := range m.clients {
		if log.newest().Before(cutoff) {
			delete(m.clients, key)
			removed++
		}
	}

	return removed
}

// Len returns the number of tracked clients.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// evictIdlestLocked drops the client whose newest timestamp is oldest.
// Caller must hold the lock.
func (m *MemoryLimiter) evictIdlestLocked() {
	var idlestKey string
	var idlestStamp time.Time

	for key, log := range m.clients {
		newest := log.newest()
		if idlestKey == "" || newest.Before(idlestStamp) {
			idlestKey = key
			idlestStamp = newest
		}
	}

	if idlestKey != "" {
		delete(m.clients, idlestKey)
	}
}
