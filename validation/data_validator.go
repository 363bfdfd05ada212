// Package validation checks reminder datasets before they are swapped in and
// sanitizes user input reaching the catalog endpoints.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
)

// Pre-compiled patterns, reused for every validation
var (
	timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	slugRegex      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// Input validation: letters, digits, spaces and the punctuation medicine names use
	inputRegex = regexp.MustCompile(`^[\p{L}0-9\s\-\.\+']+$`)
)

const maxInputLength = 100

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// Compile-time check to ensure DataValidatorImpl implements DataValidator
var _ interfaces.DataValidator = (*DataValidatorImpl)(nil)

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateDataset checks every section and joins all problems found
func (v *DataValidatorImpl) ValidateDataset(ds *entities.Dataset) error {
	if ds == nil {
		return fmt.Errorf("dataset is nil")
	}

	var errs []error

	if strings.TrimSpace(ds.Patient) == "" {
		errs = append(errs, fmt.Errorf("patient name is empty"))
	}

	errs = append(errs, validateSchedule(ds.Schedule)...)
	errs = append(errs, validateStock(ds.Stock)...)
	errs = append(errs, validateExpiry(ds.Expiry)...)
	errs = append(errs, validateCategories(ds.Categories)...)

	return errors.Join(errs...)
}

func validateSchedule(entries []entities.ScheduleEntry) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, e := range entries {
		if strings.TrimSpace(e.Period) == "" {
			errs = append(errs, fmt.Errorf("schedule[%d]: period is empty", i))
		} else if seen[e.Period] {
			errs = append(errs, fmt.Errorf("schedule[%d]: duplicate period %q", i, e.Period))
		}
		seen[e.Period] = true

		if !timeOfDayRegex.MatchString(e.Time) {
			errs = append(errs, fmt.Errorf("schedule[%d]: time %q is not HH:MM (24h)", i, e.Time))
		}

		if strings.TrimSpace(e.Greeting) == "" {
			errs = append(errs, fmt.Errorf("schedule[%d]: greeting is empty", i))
		}

		for j, m := range e.Medicines {
			if strings.TrimSpace(m.Name) == "" {
				errs = append(errs, fmt.Errorf("schedule[%d].medicines[%d]: name is empty", i, j))
			}
		}
	}

	return errs
}

func validateStock(items []entities.StockItem) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, s := range items {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("stock[%d]: name is empty", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("stock[%d]: duplicate name %q", i, s.Name))
		}
		seen[s.Name] = true

		if s.Total < 0 {
			errs = append(errs, fmt.Errorf("stock[%d]: total must not be negative, got %d", i, s.Total))
		}
		if s.LowStockThreshold < 0 {
			errs = append(errs, fmt.Errorf("stock[%d]: lowStockThreshold must not be negative, got %d", i, s.LowStockThreshold))
		}
	}

	return errs
}

func validateExpiry(records []entities.ExpiryRecord) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Errorf("expiry[%d]: name is empty", i))
		} else if seen[r.Name] {
			errs = append(errs, fmt.Errorf("expiry[%d]: duplicate name %q", i, r.Name))
		}
		seen[r.Name] = true

		if _, err := r.ParseDate(); err != nil {
			errs = append(errs, fmt.Errorf("expiry[%d]: expiryDate %q is not YYYY-MM-DD", i, r.ExpiryDate))
		}
	}

	return errs
}

func validateCategories(categories []entities.Category) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, c := range categories {
		if !slugRegex.MatchString(c.Slug) {
			errs = append(errs, fmt.Errorf("categories[%d]: slug %q must be lowercase words joined by '-'", i, c.Slug))
		} else if seen[c.Slug] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate slug %q", i, c.Slug))
		}
		seen[c.Slug] = true

		for j, m := range c.Medicines {
			if strings.TrimSpace(m.Name) == "" {
				errs = append(errs, fmt.Errorf("categories[%d].medicines[%d]: name is empty", i, j))
			}
		}
	}

	return errs
}

// ReportDataQuality lists the name mismatches between schedule, stock and expiry
func (v *DataValidatorImpl) ReportDataQuality(ds *entities.Dataset) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		StockWithoutExpiry:    []string{},
		ExpiryWithoutStock:    []string{},
		ScheduledWithoutStock: []string{},
		EmptySchedules:        []string{},
	}
	if ds == nil {
		return report
	}

	stock := make(map[string]bool, len(ds.Stock))
	for _, s := range ds.Stock {
		stock[s.Name] = true
		if _, ok := ds.ExpiryFor(s.Name); !ok {
			report.StockWithoutExpiry = append(report.StockWithoutExpiry, s.Name)
		}
	}

	for _, e := range ds.Expiry {
		if !stock[e.Name] {
			report.ExpiryWithoutStock = append(report.ExpiryWithoutStock, e.Name)
		}
	}

	reported := make(map[string]bool)
	for _, e := range ds.Schedule {
		if len(e.Medicines) == 0 {
			report.EmptySchedules = append(report.EmptySchedules, e.Period)
		}
		for _, m := range e.Medicines {
			if !stock[m.Name] && !reported[m.Name] {
				reported[m.Name] = true
				report.ScheduledWithoutStock = append(report.ScheduledWithoutStock, m.Name)
			}
		}
	}

	return report
}

// ValidateInput validates user input strings
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > maxInputLength {
		return fmt.Errorf("input too long (max %d characters)", maxInputLength)
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters")
	}

	return nil
}
