// internal/domain/stockestimate/service.go
package stockestimate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/retailops-backend/internal/cache"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"github.com/your-org/retailops-backend/internal/domain/sales"
	"github.com/your-org/retailops-backend/internal/domain/stockrequest"
	"gorm.io/gorm"
)

// Service loads the persisted inputs of the estimator and caches the
// resulting snapshot. The snapshot stays derivable from history; the
// cache only shortcuts recomputation.
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
	sales   *sales.Service
	cache   cache.EstimateCache
}

// NewService creates a new stock estimate service
func NewService(db *gorm.DB, cfg *config.Config, catalogSvc *catalog.Service, salesSvc *sales.Service, estimateCache cache.EstimateCache) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalogSvc,
		sales:   salesSvc,
		cache:   estimateCache,
	}
}

// EstimateStoreStock computes the stock snapshot for a store, serving
// from the cache when a fresh entry exists.
func (s *Service) EstimateStoreStock(ctx context.Context, storeID uint) (*Snapshot, error) {
	if _, err := s.catalog.GetStore(storeID); err != nil {
		return nil, err
	}

	key := cacheKey(storeID)
	if payload, ok := s.cache.Get(ctx, key); ok {
		var snapshot Snapshot
		if err := json.Unmarshal(payload, &snapshot); err == nil {
			return &snapshot, nil
		}
		// A corrupt entry falls through to recomputation.
		logrus.WithField("store_id", storeID).Warn("Discarding unreadable stock estimate cache entry")
	}

	fulfilled, err := s.loadFulfilledQuantities(storeID)
	if err != nil {
		return nil, err
	}

	salesCount, err := s.sales.CountForStore(storeID)
	if err != nil {
		return nil, err
	}

	trackedSKUs, err := s.catalog.ActiveSKUCodes()
	if err != nil {
		return nil, err
	}

	snapshot := Estimate(fulfilled, salesCount, trackedSKUs, Thresholds{
		Critical: s.config.Estimator.CriticalThreshold,
		Low:      s.config.Estimator.LowThreshold,
	})

	if payload, err := json.Marshal(snapshot); err == nil {
		s.cache.Set(ctx, key, payload, s.config.Estimator.CacheTTL)
	}

	return &snapshot, nil
}

// loadFulfilledQuantities collects the fulfilled quantity maps of every
// shipped request for the store. Pending and cancelled requests carry
// no stock and are excluded.
func (s *Service) loadFulfilledQuantities(storeID uint) ([]catalog.QuantityMap, error) {
	var requests []stockrequest.StockRequest
	if err := s.db.
		Where("store_id = ? AND status IN ?", storeID,
			[]stockrequest.Status{stockrequest.StatusFulfilled, stockrequest.StatusPartiallyFulfilled}).
		Where("fulfilled_quantities IS NOT NULL").
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to load fulfilled stock requests: %w", err)
	}

	maps := make([]catalog.QuantityMap, 0, len(requests))
	for _, r := range requests {
		if r.FulfilledQuantities != nil {
			maps = append(maps, r.FulfilledQuantities)
		}
	}
	return maps, nil
}

func cacheKey(storeID uint) string {
	return fmt.Sprintf("stock_estimate:store:%d", storeID)
}
