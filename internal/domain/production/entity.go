// internal/domain/production/entity.go
package production

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"gorm.io/datatypes"
)

// ApprovalStatus represents the approval state of a production record
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
)

// SKUOutput is one SKU's reported output for the day. Final is the
// quantity that will be credited to the ledger on approval;
// intermediates (raw-input usage and the like) are informational.
type SKUOutput struct {
	Final         float64            `json:"final"`
	Intermediates map[string]float64 `json:"intermediates,omitempty"`
}

// BreakdownMap maps a SKU code to its reported output.
type BreakdownMap map[string]SKUOutput

// Value serializes the breakdown as a JSON column.
func (m BreakdownMap) Value() (driver.Value, error) {
	if m == nil {
		m = BreakdownMap{}
	}
	return json.Marshal(m)
}

// Scan deserializes the JSON column.
func (m *BreakdownMap) Scan(value interface{}) error {
	if value == nil {
		*m = BreakdownMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported breakdown source type %T", value)
	}
}

// GormDataType tells GORM to declare a JSON column.
func (BreakdownMap) GormDataType() string {
	return "json"
}

// ProductionRecord is a dated report of a production house's output.
// At most one record exists per (house, date); the composite unique
// index backstops the check made at submission time.
type ProductionRecord struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	ProductionHouseID uint              `gorm:"not null;uniqueIndex:idx_production_records_house_date" json:"production_house_id"`
	Date              time.Time         `gorm:"not null;uniqueIndex:idx_production_records_house_date" json:"date"`
	Breakdown         BreakdownMap      `gorm:"type:json" json:"breakdown"`
	Wastage           datatypes.JSONMap `gorm:"type:json" json:"wastage,omitempty"`
	ApprovalStatus    ApprovalStatus    `gorm:"not null;default:'pending';index" json:"approval_status"`
	CreatedBy         uint              `gorm:"index" json:"created_by"`
	UpdatedBy         *uint             `json:"updated_by,omitempty"`
	ApprovedBy        *uint             `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time        `json:"approved_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	// Relationships
	ProductionHouse *catalog.ProductionHouse `gorm:"foreignKey:ProductionHouseID" json:"production_house,omitempty"`
}

// TableName overrides
func (ProductionRecord) TableName() string { return "production_records" }

// IsApproved reports whether the record has been approved.
func (r *ProductionRecord) IsApproved() bool {
	return r.ApprovalStatus == ApprovalStatusApproved
}

// FinalQuantities flattens the breakdown into the per-SKU quantities
// the approval step credits to the house ledger.
func (r *ProductionRecord) FinalQuantities() catalog.QuantityMap {
	out := make(catalog.QuantityMap, len(r.Breakdown))
	for sku, output := range r.Breakdown {
		out[sku] = output.Final
	}
	return out
}

// NormalizeDate truncates a timestamp to its UTC calendar day, the
// granularity of the (house, date) uniqueness key.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
