// Package data provides thread-safe storage of the reminder dataset.
// The dataset is swapped atomically on reload so readers never see a
// partially loaded schedule.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the dataset with atomic pointers for zero-downtime updates
type DataContainer struct {
	dataset         atomic.Pointer[entities.Dataset]
	report          atomic.Pointer[interfaces.DataQualityReport]
	source          atomic.Value // string
	lastLoaded      atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with an empty dataset
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.dataset.Store(&entities.Dataset{})
	dc.report.Store(&interfaces.DataQualityReport{})
	dc.source.Store("")
	dc.lastLoaded.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetDataset returns the current dataset. Callers must not modify it.
func (dc *DataContainer) GetDataset() *entities.Dataset {
	if ds := dc.dataset.Load(); ds != nil {
		return ds
	}

	logging.Warn("Dataset is empty or invalid")
	return &entities.Dataset{}
}

// GetDataQualityReport returns the report computed for the current dataset
func (dc *DataContainer) GetDataQualityReport() *interfaces.DataQualityReport {
	if r := dc.report.Load(); r != nil {
		return r
	}
	return &interfaces.DataQualityReport{}
}

// GetSource returns where the current dataset was loaded from
func (dc *DataContainer) GetSource() string {
	if v, ok := dc.source.Load().(string); ok {
		return v
	}
	return ""
}

// GetLastLoaded returns the timestamp of the last dataset load
func (dc *DataContainer) GetLastLoaded() time.Time {
	if v, ok := dc.lastLoaded.Load().(time.Time); ok {
		return v
	}

	logging.Warn("Could not get the last loaded value")
	return time.Time{}
}

// IsUpdating returns true if a reload is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v, ok := dc.serverStartTime.Load().(time.Time); ok {
		return v
	}
	return time.Time{}
}

// UpdateData atomically replaces the dataset
func (dc *DataContainer) UpdateData(dataset *entities.Dataset, source string, report *interfaces.DataQualityReport) {
	if report == nil {
		report = &interfaces.DataQualityReport{}
	}
	dc.dataset.Store(dataset)
	dc.report.Store(report)
	dc.source.Store(source)
	dc.lastLoaded.Store(time.Now())
}

// BeginUpdate marks the start of a reload.
// Returns true if the reload can proceed, false if another one is running
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a reload
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
