// internal/domain/stockestimate/estimator_test.go
package stockestimate

import (
	"reflect"
	"testing"

	"github.com/your-org/retailops-backend/internal/domain/catalog"
)

var testThresholds = Thresholds{Critical: 30, Low: 100}

func TestEstimateSumsFulfilledHistory(t *testing.T) {
	fulfilled := []catalog.QuantityMap{
		{"BREAD-WHITE": 100, "CAKE-TEA": 40},
		{"BREAD-WHITE": 50},
	}

	snapshot := Estimate(fulfilled, 0, []string{"BREAD-WHITE", "CAKE-TEA"}, testThresholds)

	if got := snapshot.TotalFulfilled.Get("BREAD-WHITE"); got != 150 {
		t.Fatalf("expected 150 total fulfilled, got %v", got)
	}
	if got := snapshot.PerSKUQuantity.Get("BREAD-WHITE"); got != 150 {
		t.Fatalf("expected 150 current stock with no sales, got %v", got)
	}
	if snapshot.OverallStatus != StatusLow {
		// mean of (150, 40) = 95, below the low threshold of 100
		t.Fatalf("expected low overall status, got %s", snapshot.OverallStatus)
	}
}

func TestEstimateConsumptionFloorDivides(t *testing.T) {
	fulfilled := []catalog.QuantityMap{{"A": 200, "B": 200, "C": 200}}

	// 100 sales over 3 tracked SKUs floor-divides to 33 per SKU.
	snapshot := Estimate(fulfilled, 100, []string{"A", "B", "C"}, testThresholds)

	if snapshot.EstimatedConsumption != 33 {
		t.Fatalf("expected consumption 33, got %v", snapshot.EstimatedConsumption)
	}
	if got := snapshot.PerSKUQuantity.Get("A"); got != 167 {
		t.Fatalf("expected 167 current stock, got %v", got)
	}
}

func TestEstimateClampsAtZero(t *testing.T) {
	fulfilled := []catalog.QuantityMap{{"A": 10}}

	snapshot := Estimate(fulfilled, 100, []string{"A"}, testThresholds)

	if got := snapshot.PerSKUQuantity.Get("A"); got != 0 {
		t.Fatalf("expected stock clamped at zero, got %v", got)
	}
	if snapshot.PerSKUStatus["A"] != StatusOut {
		t.Fatalf("expected out status, got %s", snapshot.PerSKUStatus["A"])
	}
	if snapshot.OverallStatus != StatusOut {
		t.Fatalf("expected out overall status, got %s", snapshot.OverallStatus)
	}
}

func TestEstimateIncludesUntrackedFulfilledSKUs(t *testing.T) {
	// A SKU retired from the catalog still appears if it was fulfilled.
	fulfilled := []catalog.QuantityMap{{"RETIRED": 60}}

	snapshot := Estimate(fulfilled, 0, []string{"ACTIVE"}, testThresholds)

	if got := snapshot.PerSKUQuantity.Get("RETIRED"); got != 60 {
		t.Fatalf("expected retired SKU tracked at 60, got %v", got)
	}
	if got := snapshot.PerSKUQuantity.Get("ACTIVE"); got != 0 {
		t.Fatalf("expected active SKU at zero, got %v", got)
	}
	if !reflect.DeepEqual(snapshot.TrackedSKUs, []string{"ACTIVE", "RETIRED"}) {
		t.Fatalf("unexpected SKU universe: %v", snapshot.TrackedSKUs)
	}
}

func TestEstimateIsPure(t *testing.T) {
	fulfilled := []catalog.QuantityMap{{"A": 75, "B": 20}}

	first := Estimate(fulfilled, 12, []string{"A", "B"}, testThresholds)
	second := Estimate(fulfilled, 12, []string{"A", "B"}, testThresholds)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical snapshots, got %+v and %+v", first, second)
	}
}

func TestEstimateEmptyInputs(t *testing.T) {
	snapshot := Estimate(nil, 0, nil, testThresholds)

	if len(snapshot.PerSKUQuantity) != 0 {
		t.Fatalf("expected empty quantity map, got %v", snapshot.PerSKUQuantity)
	}
	if snapshot.OverallStatus != StatusOut {
		t.Fatalf("expected out status for empty universe, got %s", snapshot.OverallStatus)
	}
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		qty  float64
		want StockStatus
	}{
		{0, StatusOut},
		{1, StatusCritical},
		{29.9, StatusCritical},
		{30, StatusLow},
		{99.9, StatusLow},
		{100, StatusHealthy},
		{500, StatusHealthy},
	}
	for _, tc := range cases {
		if got := Classify(tc.qty, testThresholds); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.qty, got, tc.want)
		}
	}
}
