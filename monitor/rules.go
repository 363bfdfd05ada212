// Package monitor implements the schedule monitor: on each tick it compares
// the wall clock against the dataset and emits medicine reminders, low stock
// alerts and expiry alerts.
package monitor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/giygas/medreminder/entities"
)

// ExpiryWarningDays is how far ahead an expiry date raises an alert.
const ExpiryWarningDays = 30

const (
	reminderTimeLayout = "15:04"
	bullet             = "\n• "
)

// Evaluate runs the three checks against ds at instant now. Reminder times
// are compared in loc. Output order: reminders in schedule order, then per
// stock item its low stock alert followed by its expiry alert.
// IDs are left empty; the caller assigns them.
func Evaluate(now time.Time, ds *entities.Dataset, loc *time.Location) []entities.Notification {
	if ds == nil {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	var out []entities.Notification

	clock := now.In(loc).Format(reminderTimeLayout)
	for _, entry := range ds.Schedule {
		if entry.Time != clock {
			continue
		}
		out = append(out, entities.Notification{
			Kind:      entities.KindReminder,
			Severity:  entities.SeverityReminder,
			Title:     entry.Greeting,
			Message:   ReminderMessage(entry),
			Period:    entry.Period,
			Medicines: entry.Labels(),
			CreatedAt: now,
		})
	}

	for _, item := range ds.Stock {
		if item.IsLow() {
			out = append(out, entities.Notification{
				Kind:      entities.KindLowStock,
				Severity:  entities.SeverityUrgent,
				Title:     entities.AlertTitle,
				Message:   LowStockMessage(ds.Patient, item),
				Medicine:  item.Name,
				CreatedAt: now,
			})
		}

		record, ok := ds.ExpiryFor(item.Name)
		if !ok {
			continue
		}
		expiry, err := record.ParseDate()
		if err != nil {
			continue
		}
		days := DaysUntil(now, expiry)
		if days > 0 && days <= ExpiryWarningDays {
			out = append(out, entities.Notification{
				Kind:      entities.KindExpiry,
				Severity:  entities.SeverityUrgent,
				Title:     entities.AlertTitle,
				Message:   ExpiryMessage(ds.Patient, item.Name, days),
				Medicine:  item.Name,
				CreatedAt: now,
			})
		}
	}

	return out
}

// ReminderMessage is the entry message followed by one bulleted line per medicine.
func ReminderMessage(entry entities.ScheduleEntry) string {
	return entry.Message + bullet + strings.Join(entry.Labels(), bullet)
}

func LowStockMessage(patient string, item entities.StockItem) string {
	return fmt.Sprintf("Hi %s! Your %s is running low. Only %d tablets left. Please refill soon!",
		patient, item.Name, item.Total)
}

func ExpiryMessage(patient, name string, days int) string {
	return fmt.Sprintf("Hi %s! Your %s will expire in %d days. Please plan to get a refill.",
		patient, name, days)
}

// DaysUntil returns the number of days from now to expiry, rounded up.
// Zero or negative means the date has been reached.
func DaysUntil(now, expiry time.Time) int {
	return int(math.Ceil(float64(expiry.Sub(now)) / float64(24*time.Hour)))
}
