// internal/domain/stockrequest/entity.go
package stockrequest

import (
	"fmt"
	"time"

	"github.com/your-org/retailops-backend/internal/domain/catalog"
)

// Status represents the stock request status
type Status string

const (
	StatusPending            Status = "pending"
	StatusPartiallyFulfilled Status = "partially_fulfilled"
	StatusFulfilled          Status = "fulfilled"
	StatusCancelled          Status = "cancelled"
)

// StockRequest is a store's ask for SKU quantities from its assigned
// production house. Created pending; exactly one fulfillment action
// moves it to fulfilled or partially_fulfilled, and cancellation is
// only possible while pending. All three non-pending states are
// terminal.
type StockRequest struct {
	ID                  uint                `gorm:"primaryKey" json:"id"`
	RequestNumber       string              `gorm:"uniqueIndex;size:50" json:"request_number"`
	StoreID             uint                `gorm:"not null;index" json:"store_id"`
	StoreName           string              `gorm:"size:255" json:"store_name"`
	ProductionHouseID   uint                `gorm:"not null;index" json:"production_house_id"`
	ProductionHouseName string              `gorm:"size:255" json:"production_house_name"`
	RequestedQuantities catalog.QuantityMap `gorm:"type:json" json:"requested_quantities"`
	Status              Status              `gorm:"not null;default:'pending';index" json:"status"`
	FulfilledQuantities catalog.QuantityMap `gorm:"type:json" json:"fulfilled_quantities,omitempty"`
	FulfilledBy         *uint               `json:"fulfilled_by,omitempty"`
	FulfillmentDate     *time.Time          `json:"fulfillment_date,omitempty"`
	Notes               string              `gorm:"type:text" json:"notes,omitempty"`
	RequestedBy         uint                `gorm:"index" json:"requested_by"`
	RequestDate         time.Time           `json:"request_date"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// TableName overrides
func (StockRequest) TableName() string { return "stock_requests" }

// IsPending reports whether the request can still transition.
func (r *StockRequest) IsPending() bool {
	return r.Status == StatusPending
}

// GenerateRequestNumber generates a unique request number
func (r *StockRequest) GenerateRequestNumber() string {
	// Format: SR-YYYYMMDD-XXXXX
	return fmt.Sprintf("SR-%s-%05d", time.Now().Format("20060102"), r.ID)
}

// DetermineStatus applies the fulfillment status rule: fulfilled for
// every positively requested SKU means fulfilled; anything shipped at
// all otherwise means partially fulfilled.
func DetermineStatus(requested, fulfilled catalog.QuantityMap) Status {
	complete := true
	for sku, want := range requested {
		if want <= 0 {
			continue
		}
		if fulfilled.Get(sku) < want {
			complete = false
			break
		}
	}
	if complete {
		return StatusFulfilled
	}
	return StatusPartiallyFulfilled
}
