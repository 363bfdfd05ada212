package health

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
)

// MockHealthDataStore for testing
type MockHealthDataStore struct {
	dataset    *entities.Dataset
	lastLoaded time.Time
	startTime  time.Time
	isUpdating bool
	report     *interfaces.DataQualityReport
}

func (m *MockHealthDataStore) GetDataset() *entities.Dataset { return m.dataset }

func (m *MockHealthDataStore) GetLastLoaded() time.Time { return m.lastLoaded }

func (m *MockHealthDataStore) GetSource() string { return "embedded" }

func (m *MockHealthDataStore) IsUpdating() bool { return m.isUpdating }
func (m *MockHealthDataStore) GetServerStartTime() time.Time {
	return m.startTime
}
func (m *MockHealthDataStore) GetDataQualityReport() *interfaces.DataQualityReport {
	return m.report
}
func (m *MockHealthDataStore) UpdateData(*entities.Dataset, string, *interfaces.DataQualityReport) {
}
func (m *MockHealthDataStore) BeginUpdate() bool { return true }

func (m *MockHealthDataStore) EndUpdate() {}

type mockMonitor struct {
	lastTick time.Time
	count    uint64
}

func (m *mockMonitor) Tick(context.Context) []entities.Notification { return nil }

func (m *mockMonitor) LastTick() time.Time { return m.lastTick }

func (m *mockMonitor) TickCount() uint64 { return m.count }

func TestHealthCheck(t *testing.T) {
	now := time.Date(2025, 4, 7, 8, 0, 0, 0, time.UTC)
	ds := &entities.Dataset{
		Schedule: []entities.ScheduleEntry{{Period: "morning"}},
		Stock:    []entities.StockItem{{Name: "Metformin"}},
	}

	tests := []struct {
		name           string
		store          *MockHealthDataStore
		monitor        *mockMonitor
		expectedStatus string
		expectedCode   int
	}{
		{
			name:           "healthy",
			store:          &MockHealthDataStore{dataset: ds, lastLoaded: now.Add(-time.Hour), startTime: now.Add(-time.Hour)},
			monitor:        &mockMonitor{lastTick: now.Add(-30 * time.Second), count: 60},
			expectedStatus: "healthy",
			expectedCode:   http.StatusOK,
		},
		{
			name:           "dataset not loaded",
			store:          &MockHealthDataStore{dataset: ds, startTime: now},
			monitor:        &mockMonitor{},
			expectedStatus: "unhealthy",
			expectedCode:   http.StatusServiceUnavailable,
		},
		{
			name:           "starting up",
			store:          &MockHealthDataStore{dataset: ds, lastLoaded: now, startTime: now.Add(-time.Minute)},
			monitor:        &mockMonitor{},
			expectedStatus: "healthy",
			expectedCode:   http.StatusOK,
		},
		{
			name:           "never ticked",
			store:          &MockHealthDataStore{dataset: ds, lastLoaded: now, startTime: now.Add(-10 * time.Minute)},
			monitor:        &mockMonitor{},
			expectedStatus: "unhealthy",
			expectedCode:   http.StatusServiceUnavailable,
		},
		{
			name:           "stalled monitor",
			store:          &MockHealthDataStore{dataset: ds, lastLoaded: now, startTime: now.Add(-time.Hour)},
			monitor:        &mockMonitor{lastTick: now.Add(-5 * time.Minute), count: 10},
			expectedStatus: "degraded",
			expectedCode:   http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewHealthChecker(tt.store, tt.monitor, time.Minute).(*HealthCheckerImpl)
			checker.now = func() time.Time { return now }

			status, data, code := checker.HealthCheck()

			if status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s", tt.expectedStatus, status)
			}
			if code != tt.expectedCode {
				t.Errorf("Expected HTTP %d, got %d", tt.expectedCode, code)
			}
			if data["tick_count"] != tt.monitor.count {
				t.Errorf("Expected tick_count %d, got %v", tt.monitor.count, data["tick_count"])
			}
		})
	}
}

func TestHealthCheckDetails(t *testing.T) {
	now := time.Date(2025, 4, 7, 8, 0, 0, 0, time.UTC)
	store := &MockHealthDataStore{
		dataset: &entities.Dataset{
			Schedule:   []entities.ScheduleEntry{{Period: "morning"}, {Period: "night"}},
			Stock:      []entities.StockItem{{Name: "Metformin"}},
			Categories: []entities.Category{{Slug: "diabetes"}},
		},
		lastLoaded: now,
		startTime:  now.Add(-90 * time.Second),
		report:     &interfaces.DataQualityReport{ExpiryWithoutStock: []string{"Aspirin"}},
	}
	checker := NewHealthChecker(store, &mockMonitor{lastTick: now, count: 2}, time.Minute).(*HealthCheckerImpl)
	checker.now = func() time.Time { return now }

	_, data, _ := checker.HealthCheck()

	if data["schedule_entries"] != 2 {
		t.Errorf("Expected 2 schedule entries, got %v", data["schedule_entries"])
	}
	if data["categories"] != 1 {
		t.Errorf("Expected 1 category, got %v", data["categories"])
	}
	if data["uptime_seconds"] != float64(90) {
		t.Errorf("Expected uptime 90, got %v", data["uptime_seconds"])
	}
	if data["last_loaded"] != now.Format(time.RFC3339) {
		t.Errorf("Expected last_loaded %s, got %v", now.Format(time.RFC3339), data["last_loaded"])
	}

	quality, ok := data["data_quality"].(map[string]any)
	if !ok {
		t.Fatal("Expected data_quality map")
	}
	if quality["expiry_without_stock"] != 1 {
		t.Errorf("Expected 1 expiry without stock, got %v", quality["expiry_without_stock"])
	}
}
