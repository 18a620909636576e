// internal/domain/sales/service_test.go
package sales

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"github.com/your-org/retailops-backend/internal/pkg/apperror"
	"github.com/your-org/retailops-backend/internal/pkg/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *catalog.Store) {
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

	if err := db.AutoMigrate(&catalog.Store{}, &SalesRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	store := &catalog.Store{Name: "Downtown Store", IsActive: true}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	return NewService(db, &config.Config{}), store
}

func TestRecordAndCount(t *testing.T) {
	svc, store := newTestService(t)
	storeID := store.ID
	actor := auth.Actor{UserID: 3, Role: auth.RoleStoreRep, StoreID: &storeID}

	for i := 0; i < 3; i++ {
		record, err := svc.Record(actor, &RecordRequest{StoreID: store.ID, AmountCents: 1250})
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if record.RecordedBy != actor.UserID {
			t.Fatalf("expected recorder %d, got %d", actor.UserID, record.RecordedBy)
		}
	}

	count, err := svc.CountForStore(store.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 sales, got %d", count)
	}
}

func TestRecordRejectsBadInput(t *testing.T) {
	svc, store := newTestService(t)
	storeID := store.ID
	actor := auth.Actor{UserID: 3, Role: auth.RoleStoreRep, StoreID: &storeID}

	if _, err := svc.Record(actor, &RecordRequest{StoreID: store.ID, AmountCents: 0}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}

	otherStore := store.ID + 99
	foreign := auth.Actor{UserID: 4, Role: auth.RoleStoreRep, StoreID: &otherStore}
	if _, err := svc.Record(foreign, &RecordRequest{StoreID: store.ID, AmountCents: 100}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for foreign store, got %v", err)
	}

	admin := auth.Actor{UserID: 1, Role: auth.RoleAdmin}
	if _, err := svc.Record(admin, &RecordRequest{StoreID: 999, AmountCents: 100}); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found error for unknown store, got %v", err)
	}
}

func TestCountForStoreIsScoped(t *testing.T) {
	svc, store := newTestService(t)
	admin := auth.Actor{UserID: 1, Role: auth.RoleAdmin}

	if _, err := svc.Record(admin, &RecordRequest{StoreID: store.ID, AmountCents: 100}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	count, err := svc.CountForStore(store.ID + 1)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 sales for other store, got %d", count)
	}
}
