package data

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	yaml "go.yaml.in/yaml/v3"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
	"github.com/giygas/medreminder/metrics"
)

// SourceEmbedded is reported as the source of the built-in dataset
const SourceEmbedded = "embedded"

//go:embed default_dataset.yaml
var defaultDataset []byte

// ErrInvalidDataset wraps every decode or validation failure
var ErrInvalidDataset = errors.New("invalid dataset")

// Parse decodes a YAML dataset. Unknown keys are rejected so a typo in a
// threshold name does not silently disable an alert.
func Parse(raw []byte) (*entities.Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var ds entities.Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDataset)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return &ds, nil
}

// DefaultDataset returns a fresh copy of the built-in dataset
func DefaultDataset() (*entities.Dataset, error) {
	return Parse(defaultDataset)
}

// Loader reads the dataset from a file (or the embedded default when the
// path is empty), validates it and stores it.
type Loader struct {
	store     interfaces.DataStore
	validator interfaces.DataValidator
	path      string
}

// NewLoader creates a loader; path may be empty
func NewLoader(store interfaces.DataStore, validator interfaces.DataValidator, path string) *Loader {
	return &Loader{store: store, validator: validator, path: path}
}

// Path returns the dataset file, empty for the embedded dataset
func (l *Loader) Path() string {
	return l.path
}

// Load performs a complete reload. On failure the previous dataset stays.
func (l *Loader) Load() error {
	if !l.store.BeginUpdate() {
		logging.Info("Dataset reload already in progress, skipping...")
		return nil
	}
	defer l.store.EndUpdate()

	if err := l.load(); err != nil {
		metrics.DatasetReloadsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.DatasetReloadsTotal.WithLabelValues("success").Inc()
	return nil
}

func (l *Loader) load() error {
	start := time.Now()

	raw, source := defaultDataset, SourceEmbedded
	if l.path != "" {
		b, err := os.ReadFile(l.path)
		if err != nil {
			return fmt.Errorf("failed to read dataset file: %w", err)
		}
		raw, source = b, l.path
	}

	ds, err := Parse(raw)
	if err != nil {
		return err
	}

	if err := l.validator.ValidateDataset(ds); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	report := l.validator.ReportDataQuality(ds)
	logReport(report)

	l.store.UpdateData(ds, source, report)

	logging.Info("Dataset loaded",
		"source", source,
		"schedule_entries", len(ds.Schedule),
		"stock_items", len(ds.Stock),
		"expiry_records", len(ds.Expiry),
		"categories", len(ds.Categories),
		"duration", time.Since(start).String(),
	)
	return nil
}

func logReport(report *interfaces.DataQualityReport) {
	if report == nil {
		return
	}
	if len(report.StockWithoutExpiry) > 0 {
		logging.Debug("Stock items without expiry date", "names", report.StockWithoutExpiry)
	}
	if len(report.ExpiryWithoutStock) > 0 {
		logging.Warn("Expiry records without matching stock item, no expiry alert will fire",
			"names", report.ExpiryWithoutStock)
	}
	if len(report.ScheduledWithoutStock) > 0 {
		logging.Warn("Scheduled medicines not tracked in stock", "names", report.ScheduledWithoutStock)
	}
	if len(report.EmptySchedules) > 0 {
		logging.Warn("Schedule entries without medicines", "periods", report.EmptySchedules)
	}
}
