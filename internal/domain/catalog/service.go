// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/pkg/apperror"
	"gorm.io/gorm"
)

// Service exposes read access to the reference data. Stores, houses and
// SKUs are owned by administrative workflows; this core consumes them.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// GetStore retrieves a store by ID
func (s *Service) GetStore(id uint) (*Store, error) {
	var store Store
	if err := s.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("store %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}
	return &store, nil
}

// GetProductionHouse retrieves a production house by ID
func (s *Service) GetProductionHouse(id uint) (*ProductionHouse, error) {
	var house ProductionHouse
	if err := s.db.First(&house, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("production house %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve production house: %w", err)
	}
	return &house, nil
}

// ListSKUs retrieves all active SKU items
func (s *Service) ListSKUs() ([]SKUItem, error) {
	var skus []SKUItem
	if err := s.db.Where("is_active = ?", true).Order("code").Find(&skus).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve SKU items: %w", err)
	}
	return skus, nil
}

// ActiveSKUCodes returns the codes of all active SKU items. The
// estimator uses this as the tracked SKU universe.
func (s *Service) ActiveSKUCodes() ([]string, error) {
	var codes []string
	if err := s.db.Model(&SKUItem{}).Where("is_active = ?", true).
		Order("code").Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve SKU codes: %w", err)
	}
	return codes, nil
}

// ListStores retrieves all active stores
func (s *Service) ListStores() ([]Store, error) {
	var stores []Store
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stores: %w", err)
	}
	return stores, nil
}

// ListProductionHouses retrieves all active production houses
func (s *Service) ListProductionHouses() ([]ProductionHouse, error) {
	var houses []ProductionHouse
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&houses).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve production houses: %w", err)
	}
	return houses, nil
}

// ListMovements retrieves recent ledger movements for a production house
func (s *Service) ListMovements(houseID uint, limit int) ([]LedgerMovement, error) {
	if _, err := s.GetProductionHouse(houseID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var movements []LedgerMovement
	if err := s.db.Where("production_house_id = ?", houseID).
		Order("id DESC").Limit(limit).Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve ledger movements: %w", err)
	}
	return movements, nil
}
