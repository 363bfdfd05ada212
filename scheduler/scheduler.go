// Package scheduler drives the schedule monitor on a fixed interval and
// warns when ticks stop arriving.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
)

// staleAfterTicks is how many missed intervals count as a stalled monitor.
const staleAfterTicks = 3

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler runs Monitor.Tick every interval using gocron
type Scheduler struct {
	monitor   interfaces.Monitor
	interval  time.Duration
	scheduler *gocron.Scheduler
	now       func() time.Time
}

// NewScheduler creates a new scheduler for the monitor
func NewScheduler(monitor interfaces.Monitor, interval time.Duration, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		monitor:   monitor,
		interval:  interval,
		scheduler: gocron.NewScheduler(loc),
		now:       time.Now,
	}
}

// Start schedules the tick and the watchdog. The first tick runs right away.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", s.interval)
	}

	// SingletonMode: a slow tick is never overlapped by the next one
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.tick)
	if err != nil {
		logging.Error("Failed to schedule monitor tick", "error", err)
		return fmt.Errorf("failed to schedule monitor tick: %w", err)
	}

	_, err = s.scheduler.Every(s.interval * staleAfterTicks).Do(s.checkTickHealth)
	if err != nil {
		logging.Error("Failed to schedule tick watchdog", "error", err)
		return fmt.Errorf("failed to schedule tick watchdog: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Schedule monitor started", "interval", s.interval.String())

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Interval returns the tick interval
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	s.monitor.Tick(ctx)
}

// TickStale reports whether the monitor has missed several intervals.
// Before the first tick it is never stale.
func (s *Scheduler) TickStale() bool {
	last := s.monitor.LastTick()
	if last.IsZero() {
		return false
	}
	return s.now().Sub(last) > s.interval*staleAfterTicks
}

func (s *Scheduler) checkTickHealth() {
	if s.TickStale() {
		logging.Warn("Schedule monitor has not ticked recently",
			"last_tick", s.monitor.LastTick().Format(time.RFC3339),
			"interval", s.interval.String())
	}
}
