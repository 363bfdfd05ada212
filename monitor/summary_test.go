package monitor

import (
	"testing"

	"github.com/giygas/medreminder/entities"
)

func TestLowStockSummary(t *testing.T) {
	ds := &entities.Dataset{
		Stock: []entities.StockItem{
			{Name: "Metformin", Total: 10, LowStockThreshold: 15},
			{Name: "Aspirin", Total: 40, LowStockThreshold: 10},
			{Name: "Vitamin D3", Total: 5, LowStockThreshold: 10},
		},
	}

	got := LowStock(ds)
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].Name != "Metformin" || got[0].Label != "10 left" {
		t.Errorf("Expected Metformin with 10 left, got %+v", got[0])
	}
	if got[1].Name != "Vitamin D3" || got[1].Label != "5 left" {
		t.Errorf("Expected Vitamin D3 with 5 left, got %+v", got[1])
	}
}

func TestLowStockSummaryEmpty(t *testing.T) {
	got := LowStock(&entities.Dataset{Stock: []entities.StockItem{{Name: "Aspirin", Total: 40, LowStockThreshold: 10}}})
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", got)
	}
}

func TestExpiringSummary(t *testing.T) {
	ds := &entities.Dataset{
		Expiry: []entities.ExpiryRecord{
			{Name: "Calcium", ExpiryDate: "2025-05-07"},
			{Name: "Multivitamin", ExpiryDate: "2025-05-22"},
			{Name: "Old", ExpiryDate: "2025-03-01"},
			{Name: "Broken", ExpiryDate: "soon"},
		},
	}

	got := Expiring(at(0, 0), ds)
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Calcium" || got[0].DaysUntilExpiry != 30 || got[0].Expired {
		t.Errorf("Expected Calcium in 30 days, got %+v", got[0])
	}
	if got[1].Name != "Old" || !got[1].Expired {
		t.Errorf("Expected Old to be listed as expired, got %+v", got[1])
	}
}
