package entities

import "time"

// ExpiryDateLayout is the layout of ExpiryRecord.ExpiryDate.
const ExpiryDateLayout = "2006-01-02"

// StockItem tracks how many units of a medicine are left.
type StockItem struct {
	Name              string `json:"name" yaml:"name"`
	Total             int    `json:"total" yaml:"total"`
	LowStockThreshold int    `json:"lowStockThreshold" yaml:"lowStockThreshold"`
}

// IsLow reports whether the item is at or below its threshold.
func (s StockItem) IsLow() bool {
	return s.Total <= s.LowStockThreshold
}

// ExpiryRecord is the expiry date of a medicine, matched to stock by name.
type ExpiryRecord struct {
	Name       string `json:"name" yaml:"name"`
	ExpiryDate string `json:"expiryDate" yaml:"expiryDate"`
}

// ParseDate parses ExpiryDate as midnight UTC.
func (e ExpiryRecord) ParseDate() (time.Time, error) {
	return time.Parse(ExpiryDateLayout, e.ExpiryDate)
}
