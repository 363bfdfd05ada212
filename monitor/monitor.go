package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
	"github.com/giygas/medreminder/metrics"
)

// Compile-time check to ensure Monitor implements interfaces.Monitor
var _ interfaces.Monitor = (*Monitor)(nil)

// Monitor evaluates the current dataset on every tick and hands the
// resulting notifications to the dispatcher.
type Monitor struct {
	store      interfaces.DataStore
	clock      interfaces.Clock
	dispatcher interfaces.Dispatcher
	loc        *time.Location

	lastTick  atomic.Int64 // unix nanos, 0 before the first tick
	tickCount atomic.Uint64
}

// New creates a monitor. loc is the zone schedule times are written in.
func New(store interfaces.DataStore, clk interfaces.Clock, dispatcher interfaces.Dispatcher, loc *time.Location) *Monitor {
	if loc == nil {
		loc = time.Local
	}
	return &Monitor{
		store:      store,
		clock:      clk,
		dispatcher: dispatcher,
		loc:        loc,
	}
}

// Tick runs the checks once. There is no deduplication: two ticks inside the
// same matching minute emit the reminder twice.
func (m *Monitor) Tick(ctx context.Context) []entities.Notification {
	now := m.clock.Now()
	m.lastTick.Store(now.UnixNano())
	m.tickCount.Add(1)
	metrics.MonitorTicksTotal.Inc()

	ds := m.store.GetDataset()
	notifications := Evaluate(now, ds, m.loc)

	for i := range notifications {
		if err := ctx.Err(); err != nil {
			logging.Warn("Tick cancelled before dispatching all notifications",
				"dispatched", i, "total", len(notifications), "error", err)
			return notifications[:i]
		}
		notifications[i].ID = uuid.NewString()
		m.dispatcher.Dispatch(notifications[i])
		metrics.NotificationsEmittedTotal.WithLabelValues(string(notifications[i].Kind)).Inc()
	}

	if len(notifications) > 0 {
		logging.Debug("Tick emitted notifications",
			"time", now.In(m.loc).Format(reminderTimeLayout),
			"count", len(notifications))
	}

	return notifications
}

// LastTick returns the clock time of the most recent tick
func (m *Monitor) LastTick() time.Time {
	ns := m.lastTick.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// TickCount returns the number of ticks run so far
func (m *Monitor) TickCount() uint64 {
	return m.tickCount.Load()
}

// Location returns the zone schedule times are compared in
func (m *Monitor) Location() *time.Location {
	return m.loc
}
