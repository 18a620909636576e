// internal/domain/catalog/ledger.go
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/retailops-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// The ledger operations run inside a caller-owned transaction so the
// inventory rewrite commits or rolls back together with the state
// transition that caused it. Callers must hold the production house
// lock for the duration of the transaction.

// CreditInventory adds quantities to the house ledger, creating absent
// SKU entries at zero, and records one movement row per SKU.
func CreditInventory(tx *gorm.DB, houseID uint, deltas QuantityMap, refType string, refID uint, actorID uint) error {
	return applyMovements(tx, houseID, deltas, MovementCredit, refType, refID, actorID)
}

// DebitInventory subtracts quantities from the house ledger. A debit
// that would take any SKU below zero fails validation: a house cannot
// ship more than it holds.
func DebitInventory(tx *gorm.DB, houseID uint, deltas QuantityMap, refType string, refID uint, actorID uint) error {
	return applyMovements(tx, houseID, deltas, MovementDebit, refType, refID, actorID)
}

func applyMovements(tx *gorm.DB, houseID uint, deltas QuantityMap, movementType MovementType, refType string, refID uint, actorID uint) error {
	if err := deltas.Validate(); err != nil {
		return apperror.Validationf("%v", err)
	}

	var house ProductionHouse
	if err := tx.First(&house, houseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFoundf("production house %d not found", houseID)
		}
		return fmt.Errorf("failed to load production house: %w", err)
	}

	if house.Inventory == nil {
		house.Inventory = QuantityMap{}
	}

	now := time.Now().UTC()
	for _, sku := range deltas.SortedSKUs() {
		qty := deltas[sku]
		if qty == 0 {
			continue
		}

		previous := house.Inventory.Get(sku)
		var next float64
		switch movementType {
		case MovementCredit:
			next = previous + qty
		case MovementDebit:
			next = previous - qty
			if next < 0 {
				return apperror.Validationf(
					"insufficient stock of %q at production house %d: on hand %v, requested %v",
					sku, houseID, previous, qty)
			}
		default:
			return fmt.Errorf("invalid movement type: %s", movementType)
		}
		house.Inventory[sku] = next

		movement := &LedgerMovement{
			ProductionHouseID: houseID,
			SKU:               sku,
			MovementType:      movementType,
			Quantity:          qty,
			PreviousQuantity:  previous,
			NewQuantity:       next,
			ReferenceType:     refType,
			ReferenceID:       refID,
			CreatedBy:         actorID,
			CreatedAt:         now,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record ledger movement: %w", err)
		}
	}

	if err := tx.Model(&ProductionHouse{}).Where("id = ?", houseID).
		Update("inventory", house.Inventory).Error; err != nil {
		return fmt.Errorf("failed to update production house inventory: %w", err)
	}

	return nil
}
