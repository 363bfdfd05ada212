package data

import (
	"sync"
	"testing"
	"time"

	"github.com/giygas/medreminder/entities"
	"github.com/giygas/medreminder/interfaces"
)

func TestNewDataContainer(t *testing.T) {
	dc := NewDataContainer()

	if dc.IsUpdating() {
		t.Error("NewDataContainer should not be updating")
	}
	if !dc.GetLastLoaded().IsZero() {
		t.Error("NewDataContainer should have zero lastLoaded time")
	}
	if ds := dc.GetDataset(); ds == nil || len(ds.Schedule) != 0 || len(ds.Stock) != 0 {
		t.Errorf("NewDataContainer should have an empty dataset, got %+v", ds)
	}
	if dc.GetSource() != "" {
		t.Errorf("Expected empty source, got %q", dc.GetSource())
	}
}

func TestUpdateData(t *testing.T) {
	dc := NewDataContainer()

	ds := &entities.Dataset{
		Patient: "Pallavi",
		Stock:   []entities.StockItem{{Name: "Calcium", Total: 8, LowStockThreshold: 10}},
	}
	report := &interfaces.DataQualityReport{StockWithoutExpiry: []string{"Calcium"}}

	before := time.Now()
	dc.UpdateData(ds, "dataset.yaml", report)

	if got := dc.GetDataset(); got != ds {
		t.Error("Expected stored dataset to be returned")
	}
	if dc.GetSource() != "dataset.yaml" {
		t.Errorf("Expected source dataset.yaml, got %s", dc.GetSource())
	}
	if dc.GetLastLoaded().Before(before) {
		t.Error("Expected lastLoaded to be refreshed")
	}
	if got := dc.GetDataQualityReport(); len(got.StockWithoutExpiry) != 1 {
		t.Errorf("Expected report to be stored, got %+v", got)
	}

	dc.UpdateData(ds, "again", nil)
	if dc.GetDataQualityReport() == nil {
		t.Error("Expected nil report to be replaced with an empty one")
	}
}

func TestBeginEndUpdate(t *testing.T) {
	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("First BeginUpdate should succeed")
	}
	if dc.BeginUpdate() {
		t.Error("Second BeginUpdate should fail while updating")
	}
	if !dc.IsUpdating() {
		t.Error("Expected IsUpdating to be true")
	}

	dc.EndUpdate()
	if dc.IsUpdating() {
		t.Error("Expected IsUpdating to be false after EndUpdate")
	}
}

func TestConcurrentReadsDuringUpdate(t *testing.T) {
	dc := NewDataContainer()
	first := &entities.Dataset{Patient: "first"}
	second := &entities.Dataset{Patient: "second"}
	dc.UpdateData(first, "a", nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p := dc.GetDataset().Patient
				if p != "first" && p != "second" {
					t.Errorf("Unexpected patient %q", p)
					return
				}
			}
		}()
	}

	dc.UpdateData(second, "b", nil)
	wg.Wait()
}

func TestServerStartTime(t *testing.T) {
	dc := NewDataContainer()
	now := time.Now()
	dc.SetServerStartTime(now)

	if !dc.GetServerStartTime().Equal(now) {
		t.Errorf("Expected %v, got %v", now, dc.GetServerStartTime())
	}
}
