// internal/domain/stockestimate/estimator.go
package stockestimate

import (
	"sort"

	"github.com/your-org/retailops-backend/internal/domain/catalog"
)

// StockStatus classifies an estimated stock level
type StockStatus string

const (
	StatusOut      StockStatus = "out"
	StatusCritical StockStatus = "critical"
	StatusLow      StockStatus = "low"
	StatusHealthy  StockStatus = "healthy"
)

// Thresholds are the classification cut-offs. They are configuration,
// not state; see config.EstimatorConfig for defaults and bounds.
type Thresholds struct {
	Critical float64 `json:"critical"`
	Low      float64 `json:"low"`
}

// Snapshot is the derived view of a store's current stock. It carries
// the inputs it was computed from so dashboards can show the working.
type Snapshot struct {
	PerSKUQuantity       catalog.QuantityMap    `json:"per_sku_quantity"`
	PerSKUStatus         map[string]StockStatus `json:"per_sku_status"`
	OverallStatus        StockStatus            `json:"overall_status"`
	TotalFulfilled       catalog.QuantityMap    `json:"total_fulfilled"`
	EstimatedConsumption float64                `json:"estimated_consumption"`
	TrackedSKUs          []string               `json:"tracked_skus"`
	SalesRecords         int64                  `json:"sales_records"`
}

// Estimate reconstructs a store's on-hand stock from its fulfillment
// history and sales activity. It is a pure function of its inputs:
// the same history always yields the same snapshot.
//
// Per-SKU sale counts are not tracked anywhere in this data, so
// consumption is approximated as total sales spread evenly across the
// tracked SKUs, floor-divided. Known coarse; kept deliberately.
func Estimate(fulfilled []catalog.QuantityMap, salesCount int64, trackedSKUs []string, th Thresholds) Snapshot {
	total := catalog.QuantityMap{}
	for _, m := range fulfilled {
		for sku, qty := range m {
			total[sku] += qty
		}
	}

	var consumption float64
	if len(trackedSKUs) > 0 {
		consumption = float64(salesCount / int64(len(trackedSKUs)))
	}

	// The universe is every tracked SKU plus anything that was ever
	// fulfilled, so stale fulfillments of retired SKUs still surface.
	universe := make(map[string]struct{}, len(trackedSKUs)+len(total))
	for _, sku := range trackedSKUs {
		universe[sku] = struct{}{}
	}
	for sku := range total {
		universe[sku] = struct{}{}
	}

	skus := make([]string, 0, len(universe))
	for sku := range universe {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	current := make(catalog.QuantityMap, len(skus))
	statuses := make(map[string]StockStatus, len(skus))
	var sum float64
	for _, sku := range skus {
		qty := total.Get(sku) - consumption
		if qty < 0 {
			qty = 0
		}
		current[sku] = qty
		statuses[sku] = Classify(qty, th)
		sum += qty
	}

	overall := StatusOut
	if len(skus) > 0 {
		overall = Classify(sum/float64(len(skus)), th)
	}

	return Snapshot{
		PerSKUQuantity:       current,
		PerSKUStatus:         statuses,
		OverallStatus:        overall,
		TotalFulfilled:       total,
		EstimatedConsumption: consumption,
		TrackedSKUs:          skus,
		SalesRecords:         salesCount,
	}
}

// Classify maps an estimated quantity to a stock status.
func Classify(qty float64, th Thresholds) StockStatus {
	switch {
	case qty <= 0:
		return StatusOut
	case qty < th.Critical:
		return StatusCritical
	case qty < th.Low:
		return StatusLow
	default:
		return StatusHealthy
	}
}
