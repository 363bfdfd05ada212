// Package handlers provides HTTP request handlers for the medicine reminder:
// the notification board, the schedule and stock views, alert summaries, the
// medicine catalog and health checks.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/medreminder/board"
	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
	"github.com/giygas/medreminder/monitor"
)

// Dependencies groups what the handlers read from.
type Dependencies struct {
	DataStore     interfaces.DataStore
	Validator     interfaces.DataValidator
	Board         interfaces.Board
	Monitor       interfaces.Monitor
	HealthChecker interfaces.HealthChecker
	Clock         interfaces.Clock
}

// HTTPHandlerImpl serves every v1 endpoint
type HTTPHandlerImpl struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	board         interfaces.Board
	monitor       interfaces.Monitor
	healthChecker interfaces.HealthChecker
	clock         interfaces.Clock
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(deps Dependencies) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		dataStore:     deps.DataStore,
		validator:     deps.Validator,
		board:         deps.Board,
		monitor:       deps.Monitor,
		healthChecker: deps.HealthChecker,
		clock:         deps.Clock,
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime"`
	Data   map[string]any `json:"data"`
	System map[string]any `json:"system"`
}

// stockView is a stock item with its derived state
type stockView struct {
	entities.StockItem
	IsLow      bool   `json:"isLow"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// ServeNotifications returns the notifications currently on the board
func (h *HTTPHandlerImpl) ServeNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := h.board.List()
	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// DismissNotification removes a notification from the board
func (h *HTTPHandlerImpl) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.board.Dismiss(id); err != nil {
		if errors.Is(err, board.ErrNotFound) {
			h.RespondWithError(w, http.StatusNotFound, "Notification not found")
			return
		}
		logging.Error("Failed to dismiss notification", "id", id, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to dismiss notification")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TriggerTick runs the monitor once and returns what it emitted
func (h *HTTPHandlerImpl) TriggerTick(w http.ResponseWriter, r *http.Request) {
	notifications := h.monitor.Tick(r.Context())
	if notifications == nil {
		notifications = []entities.Notification{}
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"count":         len(notifications),
		"tick_count":    h.monitor.TickCount(),
	})
}

// ServeSchedule returns the daily schedule
func (h *HTTPHandlerImpl) ServeSchedule(w http.ResponseWriter, r *http.Request) {
	ds := h.dataStore.GetDataset()
	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"patient":  ds.Patient,
		"schedule": ds.Schedule,
	})
}

// ServeSchedulePeriod returns one schedule entry
func (h *HTTPHandlerImpl) ServeSchedulePeriod(w http.ResponseWriter, r *http.Request) {
	period := strings.ToLower(chi.URLParam(r, "period"))

	if err := h.validator.ValidateInput(period); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, ok := h.dataStore.GetDataset().ScheduleFor(period)
	if !ok {
		h.RespondWithError(w, http.StatusNotFound, "Schedule period not found")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"entry":   entry,
		"labels":  entry.Labels(),
		"message": monitor.ReminderMessage(entry),
	})
}

// ServeStock returns every stock item with its low flag and expiry date
func (h *HTTPHandlerImpl) ServeStock(w http.ResponseWriter, r *http.Request) {
	ds := h.dataStore.GetDataset()

	items := make([]stockView, 0, len(ds.Stock))
	for _, item := range ds.Stock {
		view := stockView{StockItem: item, IsLow: item.IsLow()}
		if record, ok := ds.ExpiryFor(item.Name); ok {
			view.ExpiryDate = record.ExpiryDate
		}
		items = append(items, view)
	}

	h.RespondWithJSON(w, http.StatusOK, items)
}

// ServeLowStock returns the low stock summary
func (h *HTTPHandlerImpl) ServeLowStock(w http.ResponseWriter, r *http.Request) {
	items := monitor.LowStock(h.dataStore.GetDataset())

	response := map[string]any{
		"items": items,
		"count": len(items),
	}
	if len(items) == 0 {
		response["message"] = monitor.NoLowStockMessage
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// ServeExpiring returns the expiring medicines summary
func (h *HTTPHandlerImpl) ServeExpiring(w http.ResponseWriter, r *http.Request) {
	items := monitor.Expiring(h.clock.Now(), h.dataStore.GetDataset())

	response := map[string]any{
		"items": items,
		"count": len(items),
	}
	if len(items) == 0 {
		response["message"] = monitor.NoExpiringMessage
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status, details, httpStatus := h.healthChecker.HealthCheck()

	uptime := time.Duration(0)
	if start := h.dataStore.GetServerStartTime(); !start.IsZero() {
		uptime = time.Since(start)
	}

	response := HealthResponse{
		Status: status,
		Uptime: formatUptimeHuman(uptime),
		Data:   details,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": int(m.Alloc / 1024 / 1024),
				"sys_mb":   int(m.Sys / 1024 / 1024),
				"num_gc":   m.NumGC,
			},
		},
	}

	h.RespondWithJSON(w, httpStatus, response)
}
