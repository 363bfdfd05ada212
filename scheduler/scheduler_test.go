package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giygas/medreminder/entities"
)

type mockMonitor struct {
	ticks    atomic.Uint64
	lastTick atomic.Int64
}

func (m *mockMonitor) Tick(ctx context.Context) []entities.Notification {
	m.ticks.Add(1)
	m.lastTick.Store(time.Now().UnixNano())
	return nil
}

func (m *mockMonitor) LastTick() time.Time {
	ns := m.lastTick.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (m *mockMonitor) TickCount() uint64 {
	return m.ticks.Load()
}

func TestStartRunsFirstTickImmediately(t *testing.T) {
	m := &mockMonitor{}
	s := NewScheduler(m, time.Hour, time.UTC)

	if err := s.Start(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for m.TickCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if m.TickCount() != 1 {
		t.Errorf("Expected 1 tick right after start, got %d", m.TickCount())
	}
}

func TestStartRejectsZeroInterval(t *testing.T) {
	s := NewScheduler(&mockMonitor{}, 0, nil)
	if err := s.Start(); err == nil {
		t.Error("Expected error for zero interval")
	}
}

func TestTickStale(t *testing.T) {
	m := &mockMonitor{}
	s := NewScheduler(m, time.Minute, time.UTC)

	if s.TickStale() {
		t.Error("Expected not stale before the first tick")
	}

	m.Tick(context.Background())
	last := m.LastTick()

	s.now = func() time.Time { return last.Add(2 * time.Minute) }
	if s.TickStale() {
		t.Error("Expected not stale after two intervals")
	}

	s.now = func() time.Time { return last.Add(4 * time.Minute) }
	if !s.TickStale() {
		t.Error("Expected stale after four intervals")
	}

	// The watchdog only logs
	s.checkTickHealth()
}
