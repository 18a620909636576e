// internal/domain/sales/service.go
package sales

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"github.com/your-org/retailops-backend/internal/pkg/apperror"
	"github.com/your-org/retailops-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles sales record business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sales service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// RecordRequest represents sales record creation data
type RecordRequest struct {
	StoreID     uint  `json:"store_id" binding:"required"`
	AmountCents int64 `json:"amount_cents" binding:"required"`
}

// ListRequest represents sales record list query parameters
type ListRequest struct {
	Page    int  `form:"page,default=1"`
	Limit   int  `form:"limit,default=20"`
	StoreID uint `form:"store_id"`
}

// Record registers one sale event for a store. Store representatives
// can only record against their own store.
func (s *Service) Record(actor auth.Actor, req *RecordRequest) (*SalesRecord, error) {
	if actor.Role == auth.RoleStoreRep && !actor.AssociatedWithStore(req.StoreID) {
		return nil, apperror.Validationf("actor is not associated with store %d", req.StoreID)
	}
	if req.AmountCents <= 0 {
		return nil, apperror.Validationf("sale amount must be positive, got %d", req.AmountCents)
	}

	var store catalog.Store
	if err := s.db.First(&store, req.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("store %d not found", req.StoreID)
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	record := SalesRecord{
		StoreID:     store.ID,
		AmountCents: req.AmountCents,
		RecordedBy:  actor.UserID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create sales record: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"sales_record_id": record.ID,
		"store_id":        record.StoreID,
		"recorded_by":     actor.UserID,
	}).Info("Sale recorded")

	return &record, nil
}

// CountForStore returns the number of recorded sales for a store.
func (s *Service) CountForStore(storeID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&SalesRecord{}).Where("store_id = ?", storeID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sales records: %w", err)
	}
	return count, nil
}

// List retrieves sales records with filtering and pagination
func (s *Service) List(req *ListRequest) ([]SalesRecord, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&SalesRecord{})
	if req.StoreID > 0 {
		query = query.Where("store_id = ?", req.StoreID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales records: %w", err)
	}

	var records []SalesRecord
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("id DESC").Offset(offset).Limit(req.Limit).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve sales records: %w", err)
	}

	return records, total, nil
}
