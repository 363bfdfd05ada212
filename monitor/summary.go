package monitor

import (
	"fmt"
	"time"

	"github.com/giygas/medreminder/entities"
)

// Messages shown when a summary has nothing to list.
const (
	NoLowStockMessage = "All medicines are well stocked"
	NoExpiringMessage = "No medicines expiring soon"
)

// LowStockEntry is one line of the low stock panel.
type LowStockEntry struct {
	Name              string `json:"name"`
	Total             int    `json:"total"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	Label             string `json:"label"`
}

// ExpiringEntry is one line of the expiring panel.
type ExpiringEntry struct {
	Name            string `json:"name"`
	ExpiryDate      string `json:"expiryDate"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
	Expired         bool   `json:"expired"`
}

// LowStock lists every stock item at or below its threshold.
func LowStock(ds *entities.Dataset) []LowStockEntry {
	out := []LowStockEntry{}
	if ds == nil {
		return out
	}
	for _, item := range ds.Stock {
		if !item.IsLow() {
			continue
		}
		out = append(out, LowStockEntry{
			Name:              item.Name,
			Total:             item.Total,
			LowStockThreshold: item.LowStockThreshold,
			Label:             fmt.Sprintf("%d left", item.Total),
		})
	}
	return out
}

// Expiring lists expiry records dated within ExpiryWarningDays of now.
// Unlike the alert rule, records that already expired are included.
func Expiring(now time.Time, ds *entities.Dataset) []ExpiringEntry {
	out := []ExpiringEntry{}
	if ds == nil {
		return out
	}
	limit := now.AddDate(0, 0, ExpiryWarningDays)
	for _, record := range ds.Expiry {
		expiry, err := record.ParseDate()
		if err != nil || expiry.After(limit) {
			continue
		}
		days := DaysUntil(now, expiry)
		out = append(out, ExpiringEntry{
			Name:            record.Name,
			ExpiryDate:      record.ExpiryDate,
			DaysUntilExpiry: days,
			Expired:         days <= 0,
		})
	}
	return out
}
