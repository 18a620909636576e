// internal/domain/catalog/entity.go
package catalog

import (
	"time"
)

// MovementType represents the direction of a ledger movement
type MovementType string

const (
	MovementCredit MovementType = "credit" // production record approval
	MovementDebit  MovementType = "debit"  // stock request fulfillment
)

// SKUItem represents a trackable item type. The Code is the open string
// key used throughout the quantity maps.
type SKUItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null;size:100" json:"code"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Unit      string    `gorm:"size:20;default:'kg'" json:"unit"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store represents a point-of-sale location. A store without an
// assigned production house cannot raise stock requests.
type Store struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null;size:255" json:"name"`
	ProductionHouseID *uint     `gorm:"index" json:"production_house_id"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	ProductionHouse *ProductionHouse `gorm:"foreignKey:ProductionHouseID" json:"production_house,omitempty"`
}

// ProductionHouse represents a facility that manufactures finished SKUs.
// Inventory is the authoritative on-hand ledger; it is mutated only by
// the ledger operations in this package.
type ProductionHouse struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Name       string      `gorm:"not null;size:255" json:"name"`
	LeadUserID *uint       `gorm:"index" json:"lead_user_id"`
	Inventory  QuantityMap `gorm:"type:json" json:"inventory"`
	IsActive   bool        `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// LedgerMovement is the audit record of a single SKU mutation on a
// production house ledger. Written inside the same transaction as the
// mutation itself.
type LedgerMovement struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	ProductionHouseID uint         `gorm:"not null;index" json:"production_house_id"`
	SKU               string       `gorm:"not null;size:100;index" json:"sku"`
	MovementType      MovementType `gorm:"not null" json:"movement_type"`
	Quantity          float64      `gorm:"not null" json:"quantity"`
	PreviousQuantity  float64      `gorm:"not null" json:"previous_quantity"`
	NewQuantity       float64      `gorm:"not null" json:"new_quantity"`
	ReferenceType     string       `gorm:"size:50" json:"reference_type"` // "production_record", "stock_request"
	ReferenceID       uint         `json:"reference_id"`
	CreatedBy         uint         `gorm:"index" json:"created_by"`
	CreatedAt         time.Time    `json:"created_at"`
}

// TableName overrides
func (SKUItem) TableName() string         { return "sku_items" }
func (Store) TableName() string           { return "stores" }
func (ProductionHouse) TableName() string { return "production_houses" }
func (LedgerMovement) TableName() string  { return "ledger_movements" }

// CanOrder reports whether the store is in a valid state for raising
// stock requests.
func (s *Store) CanOrder() bool {
	return s.ProductionHouseID != nil
}

// OnHand returns the ledger quantity for a SKU.
func (h *ProductionHouse) OnHand(sku string) float64 {
	return h.Inventory.Get(sku)
}
