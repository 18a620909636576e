// internal/domain/stockestimate/service_test.go
package stockestimate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/your-org/retailops-backend/internal/cache"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"github.com/your-org/retailops-backend/internal/domain/sales"
	"github.com/your-org/retailops-backend/internal/domain/stockrequest"
	"github.com/your-org/retailops-backend/internal/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *catalog.Store) {
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

	models := []interface{}{
		&catalog.SKUItem{}, &catalog.ProductionHouse{}, &catalog.Store{},
		&stockrequest.StockRequest{}, &sales.SalesRecord{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate %T: %v", model, err)
		}
	}

	house := &catalog.ProductionHouse{Name: "Central Bakery", Inventory: catalog.QuantityMap{}, IsActive: true}
	if err := db.Create(house).Error; err != nil {
		t.Fatalf("failed to create house: %v", err)
	}
	store := &catalog.Store{Name: "Downtown Store", ProductionHouseID: &house.ID, IsActive: true}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cfg := &config.Config{
		Estimator: config.EstimatorConfig{
			CriticalThreshold: 30,
			LowThreshold:      100,
			CacheTTL:          30 * time.Second,
		},
	}
	svc := NewService(db, cfg, catalog.NewService(db, cfg), sales.NewService(db, cfg), cache.NoopEstimateCache{})
	return svc, db, store
}

func seedSKUs(t *testing.T, db *gorm.DB, codes ...string) {
	t.Helper()
	for _, code := range codes {
		if err := db.Create(&catalog.SKUItem{Code: code, Name: code, Unit: "unit", IsActive: true}).Error; err != nil {
			t.Fatalf("failed to seed SKU %s: %v", code, err)
		}
	}
}

var seedSeq int

func seedFulfilledRequest(t *testing.T, db *gorm.DB, store *catalog.Store, status stockrequest.Status, quantities catalog.QuantityMap) {
	t.Helper()

	seedSeq++
	fulfiller := uint(7)
	now := time.Now().UTC()
	request := stockrequest.StockRequest{
		RequestNumber:       fmt.Sprintf("SR-TEST-%05d", seedSeq),
		StoreID:             store.ID,
		StoreName:           store.Name,
		ProductionHouseID:   *store.ProductionHouseID,
		RequestedQuantities: quantities,
		Status:              status,
		FulfilledQuantities: quantities,
		FulfilledBy:         &fulfiller,
		FulfillmentDate:     &now,
		RequestedBy:         3,
		RequestDate:         now,
	}
	if status == stockrequest.StatusPending || status == stockrequest.StatusCancelled {
		request.FulfilledQuantities = nil
		request.FulfilledBy = nil
		request.FulfillmentDate = nil
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("failed to seed stock request: %v", err)
	}
}

func TestEstimateStoreStockAggregatesShippedRequests(t *testing.T) {
	svc, db, store := newTestService(t)
	seedSKUs(t, db, "BREAD-WHITE", "CAKE-TEA")

	seedFulfilledRequest(t, db, store, stockrequest.StatusFulfilled, catalog.QuantityMap{"BREAD-WHITE": 100})
	seedFulfilledRequest(t, db, store, stockrequest.StatusPartiallyFulfilled, catalog.QuantityMap{"BREAD-WHITE": 50, "CAKE-TEA": 40})
	// Pending and cancelled requests carry no stock.
	seedFulfilledRequest(t, db, store, stockrequest.StatusPending, catalog.QuantityMap{"BREAD-WHITE": 999})
	seedFulfilledRequest(t, db, store, stockrequest.StatusCancelled, catalog.QuantityMap{"CAKE-TEA": 999})

	for i := 0; i < 10; i++ {
		if err := db.Create(&sales.SalesRecord{StoreID: store.ID, AmountCents: 500, RecordedBy: 3}).Error; err != nil {
			t.Fatalf("failed to seed sale: %v", err)
		}
	}

	snapshot, err := svc.EstimateStoreStock(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	// 10 sales over 2 tracked SKUs consumes 5 per SKU.
	if snapshot.EstimatedConsumption != 5 {
		t.Fatalf("expected consumption 5, got %v", snapshot.EstimatedConsumption)
	}
	if got := snapshot.PerSKUQuantity.Get("BREAD-WHITE"); got != 145 {
		t.Fatalf("expected 145 BREAD-WHITE, got %v", got)
	}
	if got := snapshot.PerSKUQuantity.Get("CAKE-TEA"); got != 35 {
		t.Fatalf("expected 35 CAKE-TEA, got %v", got)
	}
	if snapshot.SalesRecords != 10 {
		t.Fatalf("expected 10 sales records, got %d", snapshot.SalesRecords)
	}
}

func TestEstimateStoreStockIsRepeatable(t *testing.T) {
	svc, db, store := newTestService(t)
	seedSKUs(t, db, "BREAD-WHITE")
	seedFulfilledRequest(t, db, store, stockrequest.StatusFulfilled, catalog.QuantityMap{"BREAD-WHITE": 80})

	first, err := svc.EstimateStoreStock(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("first estimate failed: %v", err)
	}
	second, err := svc.EstimateStoreStock(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("second estimate failed: %v", err)
	}

	if first.PerSKUQuantity.Get("BREAD-WHITE") != second.PerSKUQuantity.Get("BREAD-WHITE") {
		t.Fatalf("estimates diverged: %v vs %v", first.PerSKUQuantity, second.PerSKUQuantity)
	}
	if first.OverallStatus != second.OverallStatus {
		t.Fatalf("statuses diverged: %s vs %s", first.OverallStatus, second.OverallStatus)
	}
}

func TestEstimateStoreStockUnknownStore(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.EstimateStoreStock(context.Background(), 999)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
