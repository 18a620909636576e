// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"github.com/your-org/retailops-backend/internal/domain/production"
	"github.com/your-org/retailops-backend/internal/domain/sales"
	"github.com/your-org/retailops-backend/internal/domain/stockrequest"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Catalog domain - reference tables
		&catalog.SKUItem{},
		&catalog.ProductionHouse{},
		&catalog.Store{},
		&catalog.LedgerMovement{},

		// Production domain
		&production.ProductionRecord{},

		// Stock request domain
		&stockrequest.StockRequest{},

		// Sales domain
		&sales.SalesRecord{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		// Stock request indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_requests_store_status ON stock_requests(store_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_stock_requests_house_status ON stock_requests(production_house_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_stock_requests_created_at ON stock_requests(created_at DESC)",

		// Production record indexes
		"CREATE INDEX IF NOT EXISTS idx_production_records_house_status ON production_records(production_house_id, approval_status)",
		"CREATE INDEX IF NOT EXISTS idx_production_records_date ON production_records(date DESC)",

		// Ledger movement indexes
		"CREATE INDEX IF NOT EXISTS idx_ledger_movements_house_created ON ledger_movements(production_house_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_ledger_movements_reference ON ledger_movements(reference_type, reference_id)",

		// Sales record indexes
		"CREATE INDEX IF NOT EXISTS idx_sales_records_store_created ON sales_records(store_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("Database indexes created successfully")
	return nil
}

// SeedInitialData seeds reference data for development environments
func (m *Migration) SeedInitialData() error {
	log.Println("Seeding initial data...")

	var skuCount int64
	if err := m.db.Model(&catalog.SKUItem{}).Count(&skuCount).Error; err != nil {
		return fmt.Errorf("failed to count SKU items: %w", err)
	}
	if skuCount > 0 {
		log.Println("Reference data already present, skipping seed")
		return nil
	}

	skus := []catalog.SKUItem{
		{Code: "BREAD-WHITE", Name: "White Bread Loaf", Unit: "loaf", IsActive: true},
		{Code: "BREAD-WHEAT", Name: "Whole Wheat Loaf", Unit: "loaf", IsActive: true},
		{Code: "BUN-BURGER", Name: "Burger Bun 6-pack", Unit: "pack", IsActive: true},
		{Code: "CAKE-TEA", Name: "Tea Cake", Unit: "piece", IsActive: true},
	}
	if err := m.db.Create(&skus).Error; err != nil {
		return fmt.Errorf("failed to seed SKU items: %w", err)
	}

	house := catalog.ProductionHouse{
		Name:      "Central Bakery",
		Inventory: catalog.QuantityMap{},
		IsActive:  true,
	}
	if err := m.db.Create(&house).Error; err != nil {
		return fmt.Errorf("failed to seed production house: %w", err)
	}

	stores := []catalog.Store{
		{Name: "Downtown Store", ProductionHouseID: &house.ID, IsActive: true},
		{Name: "Riverside Store", ProductionHouseID: &house.ID, IsActive: true},
	}
	if err := m.db.Create(&stores).Error; err != nil {
		return fmt.Errorf("failed to seed stores: %w", err)
	}

	log.Println("Initial data seeded successfully")
	return nil
}

// GetTableInfo logs the tables present in the database
func (m *Migration) GetTableInfo() {
	tables := []string{
		"sku_items", "stores", "production_houses", "ledger_movements",
		"production_records", "stock_requests", "sales_records",
	}

	log.Println("Database tables:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("  %s: unavailable (%v)", table, err)
			continue
		}
		log.Printf("  %s: %d rows", table, count)
	}
}
