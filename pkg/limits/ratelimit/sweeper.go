package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically removes idle clients from a MemoryLimiter so the
// tracked-client map cannot grow without bound. It runs on a cron schedule.
type Sweeper struct {
	limiter  *MemoryLimiter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool

	// onSweep, when set, receives the removal count and the number of
	// clients still tracked after each sweep.
	onSweep func(removed, tracked int)
}

// NewSweeper creates a sweeper for the given limiter.
//
// The schedule uses cron syntax, including the @every form:
//   - "@every 1m"  - once a minute
//   - "*/5 * * * *" - every five minutes
func NewSweeper(limiter *MemoryLimiter, schedule string) *Sweeper {
	return &Sweeper{
		limiter:  limiter,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "ratelimit.sweeper"),
	}
}

// OnSweep registers a callback invoked after every sweep, typically to
// update a tracked-clients gauge. Must be called before Start.
func (s *Sweeper) OnSweep(fn func(removed, tracked int)) {
	s.onSweep = fn
}

// Start begins scheduled sweeping. An empty schedule disables the sweeper.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rate limit sweeper started", "schedule", s.schedule)

	// Stop with the surrounding lifecycle.
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSweep executes one sweep cycle.
func (s *Sweeper) runSweep() {
	removed := s.limiter.Sweep()
	tracked := s.limiter.Len()

	if s.onSweep != nil {
		s.onSweep(removed, tracked)
	}

	if removed > 0 {
		s.logger.Debug("swept idle rate limit clients",
			"removed", removed,
			"tracked", tracked,
		)
	}
}

// Stop stops the scheduler and waits for a running sweep to complete.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("rate limit sweeper stopped")
	}
}

// IsRunning returns true if the sweeper is running.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled sweep time.
func (s *Sweeper) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
