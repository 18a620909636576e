// internal/domain/catalog/ledger_test.go
package catalog

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&SKUItem{}, &ProductionHouse{}, &Store{}, &LedgerMovement{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestHouse(t *testing.T, db *gorm.DB, inventory QuantityMap) *ProductionHouse {
	t.Helper()

	house := &ProductionHouse{Name: "Central Bakery", Inventory: inventory, IsActive: true}
	if err := db.Create(house).Error; err != nil {
		t.Fatalf("failed to create production house: %v", err)
	}
	return house
}

func TestCreditInventoryAddsQuantitiesAndWritesMovements(t *testing.T) {
	db := newTestDB(t)
	house := newTestHouse(t, db, QuantityMap{"BREAD-WHITE": 10})

	err := db.Transaction(func(tx *gorm.DB) error {
		return CreditInventory(tx, house.ID, QuantityMap{"BREAD-WHITE": 5, "CAKE-TEA": 3}, "production_record", 1, 42)
	})
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	var reloaded ProductionHouse
	if err := db.First(&reloaded, house.ID).Error; err != nil {
		t.Fatalf("failed to reload house: %v", err)
	}
	if got := reloaded.OnHand("BREAD-WHITE"); got != 15 {
		t.Fatalf("expected 15 BREAD-WHITE on hand, got %v", got)
	}
	if got := reloaded.OnHand("CAKE-TEA"); got != 3 {
		t.Fatalf("expected 3 CAKE-TEA on hand, got %v", got)
	}

	var movements []LedgerMovement
	if err := db.Where("production_house_id = ?", house.ID).Order("sku").Find(&movements).Error; err != nil {
		t.Fatalf("failed to load movements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(movements))
	}
	if movements[0].SKU != "BREAD-WHITE" || movements[0].PreviousQuantity != 10 || movements[0].NewQuantity != 15 {
		t.Fatalf("unexpected BREAD-WHITE movement: %+v", movements[0])
	}
	if movements[1].MovementType != MovementCredit || movements[1].ReferenceType != "production_record" {
		t.Fatalf("unexpected CAKE-TEA movement: %+v", movements[1])
	}
}

func TestDebitInventorySubtractsDownToZero(t *testing.T) {
	db := newTestDB(t)
	house := newTestHouse(t, db, QuantityMap{"BREAD-WHITE": 8})

	err := db.Transaction(func(tx *gorm.DB) error {
		return DebitInventory(tx, house.ID, QuantityMap{"BREAD-WHITE": 8}, "stock_request", 7, 42)
	})
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}

	var reloaded ProductionHouse
	if err := db.First(&reloaded, house.ID).Error; err != nil {
		t.Fatalf("failed to reload house: %v", err)
	}
	if got := reloaded.OnHand("BREAD-WHITE"); got != 0 {
		t.Fatalf("expected 0 on hand, got %v", got)
	}
}

func TestDebitInventoryRejectsGoingNegative(t *testing.T) {
	db := newTestDB(t)
	house := newTestHouse(t, db, QuantityMap{"BREAD-WHITE": 5})

	err := db.Transaction(func(tx *gorm.DB) error {
		return DebitInventory(tx, house.ID, QuantityMap{"BREAD-WHITE": 6}, "stock_request", 7, 42)
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	// The failed transaction must leave the ledger untouched.
	var reloaded ProductionHouse
	if err := db.First(&reloaded, house.ID).Error; err != nil {
		t.Fatalf("failed to reload house: %v", err)
	}
	if got := reloaded.OnHand("BREAD-WHITE"); got != 5 {
		t.Fatalf("expected 5 on hand after rollback, got %v", got)
	}

	var count int64
	if err := db.Model(&LedgerMovement{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count movements: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no movements after rollback, got %d", count)
	}
}

func TestLedgerRejectsNegativeDeltas(t *testing.T) {
	db := newTestDB(t)
	house := newTestHouse(t, db, QuantityMap{})

	err := db.Transaction(func(tx *gorm.DB) error {
		return CreditInventory(tx, house.ID, QuantityMap{"BREAD-WHITE": -1}, "production_record", 1, 42)
	})
	if err == nil {
		t.Fatal("expected validation error for negative delta")
	}
}

func TestLedgerUnknownHouse(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		return CreditInventory(tx, 999, QuantityMap{"BREAD-WHITE": 1}, "production_record", 1, 42)
	})
	if err == nil {
		t.Fatal("expected not found error for unknown house")
	}
}

func TestQuantityMapNilPersistsAsNull(t *testing.T) {
	m := QuantityMap(nil)
	v, err := m.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil driver value for nil map, got %v", v)
	}

	var scanned QuantityMap
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if scanned != nil {
		t.Fatalf("expected nil map after scanning NULL, got %v", scanned)
	}
}
