// internal/domain/sales/entity.go
package sales

import "time"

// SalesRecord is one recorded sale event at a store. The estimator only
// consumes the per-store count; the amount is kept for reporting.
type SalesRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StoreID     uint      `gorm:"not null;index" json:"store_id"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	RecordedBy  uint      `gorm:"index" json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides
func (SalesRecord) TableName() string { return "sales_records" }
