// Package interfaces defines core abstractions for the medicine reminder
// to improve testability and keep time, storage and delivery injectable.
package interfaces

import (
	"context"
	"time"

	"github.com/giygas/medreminder/entities"
)

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock is the source of wall-clock time and delayed callbacks.
// Production code uses clock.Real; tests drive a clock.Fake.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// DataQualityReport summarizes cross-reference gaps in a dataset.
// None of these are errors: a mismatch simply never produces an alert.
type DataQualityReport struct {
	StockWithoutExpiry    []string // stock items with no expiry record
	ExpiryWithoutStock    []string // expiry records no stock item points at
	ScheduledWithoutStock []string // scheduled medicines not tracked in stock
	EmptySchedules        []string // periods with no medicines
}

// DataStore defines the contract for dataset storage.
// It provides thread-safe access with atomic replacement on reload.
type DataStore interface {
	// Data retrieval methods
	GetDataset() *entities.Dataset
	GetLastLoaded() time.Time
	GetSource() string
	IsUpdating() bool
	GetServerStartTime() time.Time
	GetDataQualityReport() *DataQualityReport

	// Data update methods
	UpdateData(dataset *entities.Dataset, source string, report *DataQualityReport)
	BeginUpdate() bool
	EndUpdate()
}

// Board holds the notifications currently on display.
type Board interface {
	Add(n entities.Notification)
	Dismiss(id string) error
	List() []entities.Notification
	Subscribe() (<-chan entities.BoardEvent, func())
}

// PushRequest is the payload handed to a push provider. URL and Icon mirror
// the provider's optional launch URL and icon, which reminders leave empty.
type PushRequest struct {
	Title   string
	Message string
	URL     string
	Icon    string
}

// Pusher delivers a mobile push notification.
type Pusher interface {
	Name() string
	Push(ctx context.Context, req PushRequest) error
}

// Dispatcher shows a notification on the board and pushes it to mobile
// without waiting on the push.
type Dispatcher interface {
	Dispatch(n entities.Notification)
	Wait()
}

// Monitor runs the schedule, stock and expiry checks.
type Monitor interface {
	Tick(ctx context.Context) []entities.Notification
	LastTick() time.Time
	TickCount() uint64
}

// Scheduler defines the contract for the periodic tick driver.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current system health status
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// DataValidator defines the contract for dataset validation.
type DataValidator interface {
	// ValidateDataset returns every structural problem found, joined
	ValidateDataset(ds *entities.Dataset) error

	// ReportDataQuality lists cross-reference gaps that are not errors
	ReportDataQuality(ds *entities.Dataset) *DataQualityReport

	// ValidateInput validates user supplied path segments
	ValidateInput(input string) error
}
