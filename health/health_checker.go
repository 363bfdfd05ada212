// Package health provides health checking functionality for the reminder service.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/medreminder/interfaces"
)

// staleTickFactor is how many tick intervals may pass before the monitor is
// reported as stalled.
const staleTickFactor = 3

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore    interfaces.DataStore
	monitor      interfaces.Monitor
	tickInterval time.Duration
	now          func() time.Time
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore, monitor interfaces.Monitor, tickInterval time.Duration) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore:    dataStore,
		monitor:      monitor,
		tickInterval: tickInterval,
		now:          time.Now,
	}
}

// HealthCheck reports whether a dataset is loaded and the monitor is ticking.
// Used by /health HTTP endpoint
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	now := h.now()
	ds := h.dataStore.GetDataset()
	lastLoaded := h.dataStore.GetLastLoaded()
	isUpdating := h.dataStore.IsUpdating()
	startTime := h.dataStore.GetServerStartTime()
	lastTick := h.monitor.LastTick()

	tickAge := time.Duration(0)
	if !lastTick.IsZero() {
		tickAge = now.Sub(lastTick)
	}

	switch {
	case lastLoaded.IsZero() || ds == nil:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case lastTick.IsZero() && !startTime.IsZero() && now.Sub(startTime) > h.tickInterval*staleTickFactor:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case !lastTick.IsZero() && tickAge > h.tickInterval*staleTickFactor:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_loaded":      formatTime(lastLoaded),
		"source":           h.dataStore.GetSource(),
		"is_updating":      isUpdating,
		"last_tick":        formatTime(lastTick),
		"tick_age_seconds": math.Round(tickAge.Seconds()*10) / 10,
		"tick_count":       h.monitor.TickCount(),
	}

	if ds != nil {
		data["schedule_entries"] = len(ds.Schedule)
		data["stock_items"] = len(ds.Stock)
		data["categories"] = len(ds.Categories)
	}

	if !startTime.IsZero() {
		data["uptime_seconds"] = math.Round(now.Sub(startTime).Seconds())
	}

	if report := h.dataStore.GetDataQualityReport(); report != nil {
		data["data_quality"] = map[string]any{
			"stock_without_expiry":    len(report.StockWithoutExpiry),
			"expiry_without_stock":    len(report.ExpiryWithoutStock),
			"scheduled_without_stock": len(report.ScheduledWithoutStock),
			"empty_schedules":         len(report.EmptySchedules),
		}
	}

	return status, data, httpStatus
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
