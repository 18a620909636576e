// internal/domain/stockrequest/service.go
package stockrequest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/retailops-backend/internal/config"
	"github.com/your-org/retailops-backend/internal/domain/catalog"
	"github.com/your-org/retailops-backend/internal/pkg/apperror"
	"github.com/your-org/retailops-backend/internal/pkg/auth"
	"github.com/your-org/retailops-backend/internal/pkg/lock"
	"gorm.io/gorm"
)

const houseLockTTL = 10 * time.Second

// Service handles stock request business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	locker lock.Locker
}

// NewService creates a new stock request service
func NewService(db *gorm.DB, cfg *config.Config, locker lock.Locker) *Service {
	return &Service{
		db:     db,
		config: cfg,
		locker: locker,
	}
}

// CreateRequest represents stock request creation data
type CreateRequest struct {
	StoreID    uint                `json:"store_id" binding:"required"`
	Quantities catalog.QuantityMap `json:"quantities" binding:"required"`
	Notes      string              `json:"notes,omitempty"`
}

// FulfillRequest represents stock request fulfillment data
type FulfillRequest struct {
	Quantities catalog.QuantityMap `json:"quantities" binding:"required"`
	Notes      string              `json:"notes,omitempty"`
}

// ListRequest represents stock request list query parameters
type ListRequest struct {
	Page              int    `form:"page,default=1"`
	Limit             int    `form:"limit,default=20"`
	StoreID           uint   `form:"store_id"`
	ProductionHouseID uint   `form:"production_house_id"`
	Status            Status `form:"status"`
}

// Create opens a pending stock request from a store to its assigned
// production house. Store representatives can only order for their own
// store; the routing to a house is taken from the store record, never
// from the caller.
func (s *Service) Create(actor auth.Actor, req *CreateRequest) (*StockRequest, error) {
	if actor.Role == auth.RoleStoreRep && !actor.AssociatedWithStore(req.StoreID) {
		return nil, apperror.Validationf("actor is not associated with store %d", req.StoreID)
	}

	var store catalog.Store
	if err := s.db.First(&store, req.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("store %d not found", req.StoreID)
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	if store.ProductionHouseID == nil {
		return nil, apperror.Validationf(
			"store %d has no assigned production house, contact an administrator", req.StoreID)
	}

	if err := req.Quantities.Validate(); err != nil {
		return nil, apperror.Validationf("%v", err)
	}
	if !req.Quantities.HasPositive() {
		return nil, apperror.Validationf("request must contain at least one positive quantity")
	}

	var house catalog.ProductionHouse
	if err := s.db.First(&house, *store.ProductionHouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("production house %d not found", *store.ProductionHouseID)
		}
		return nil, fmt.Errorf("failed to load production house: %w", err)
	}

	request := StockRequest{
		StoreID:             store.ID,
		StoreName:           store.Name,
		ProductionHouseID:   house.ID,
		ProductionHouseName: house.Name,
		RequestedQuantities: req.Quantities.Clone(),
		Status:              StatusPending,
		Notes:               req.Notes,
		RequestedBy:         actor.UserID,
		RequestDate:         time.Now().UTC(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return fmt.Errorf("failed to create stock request: %w", err)
		}
		// The number embeds the DB-assigned ID, so it is set in a
		// second step inside the same transaction.
		request.RequestNumber = request.GenerateRequestNumber()
		if err := tx.Model(&request).Update("request_number", request.RequestNumber).Error; err != nil {
			return fmt.Errorf("failed to set request number: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"stock_request_id":    request.ID,
		"request_number":      request.RequestNumber,
		"store_id":            request.StoreID,
		"production_house_id": request.ProductionHouseID,
		"requested_by":        actor.UserID,
	}).Info("Stock request created")

	return &request, nil
}

// Fulfill ships quantities against a pending request. The status flip,
// the fulfilled quantities and the ledger debit commit as one
// transaction, so a fulfilled request always has a matching debit and
// the house can never go below zero on any SKU.
func (s *Service) Fulfill(ctx context.Context, actor auth.Actor, requestID uint, req *FulfillRequest) (*StockRequest, error) {
	request, err := s.Get(requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsPending() {
		return nil, apperror.InvalidStatef(
			"stock request %d is %s and can no longer be fulfilled", requestID, request.Status)
	}
	if !actor.AssociatedWithHouse(request.ProductionHouseID) {
		return nil, apperror.Validationf("actor is not associated with production house %d", request.ProductionHouseID)
	}

	if err := req.Quantities.Validate(); err != nil {
		return nil, apperror.Validationf("%v", err)
	}
	if !req.Quantities.HasPositive() {
		return nil, apperror.Validationf("fulfillment must contain at least one positive quantity")
	}

	release, err := s.locker.Acquire(ctx, lock.ProductionHouseKey(request.ProductionHouseID), houseLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock production house %d: %w", request.ProductionHouseID, err)
	}
	defer release()

	fulfilled := req.Quantities.Clone()
	status := DetermineStatus(request.RequestedQuantities, fulfilled)
	now := time.Now().UTC()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional update keyed on the current status: of two
		// concurrent fulfillments at most one lands.
		res := tx.Model(&StockRequest{}).
			Where("id = ? AND status = ?", requestID, StatusPending).
			Updates(map[string]interface{}{
				"status":               status,
				"fulfilled_quantities": fulfilled,
				"fulfilled_by":         actor.UserID,
				"fulfillment_date":     now,
				"notes":                appendNotes(request.Notes, req.Notes),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update stock request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.Conflictf("stock request %d was concurrently modified", requestID)
		}

		return catalog.DebitInventory(tx, request.ProductionHouseID, fulfilled,
			"stock_request", requestID, actor.UserID)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"stock_request_id":    requestID,
		"request_number":      request.RequestNumber,
		"production_house_id": request.ProductionHouseID,
		"status":              status,
		"fulfilled_by":        actor.UserID,
	}).Info("Stock request fulfilled and ledger debited")

	return s.Get(requestID)
}

// Cancel withdraws a pending request. Fulfilled requests are never
// cancelled because their ledger debit has already happened.
func (s *Service) Cancel(ctx context.Context, actor auth.Actor, requestID uint) (*StockRequest, error) {
	request, err := s.Get(requestID)
	if err != nil {
		return nil, err
	}

	if actor.Role == auth.RoleStoreRep && !actor.AssociatedWithStore(request.StoreID) {
		return nil, apperror.Validationf("actor is not associated with store %d", request.StoreID)
	}
	if !request.IsPending() {
		return nil, apperror.InvalidStatef(
			"stock request %d is %s and can no longer be cancelled", requestID, request.Status)
	}

	res := s.db.Model(&StockRequest{}).
		Where("id = ? AND status = ?", requestID, StatusPending).
		Update("status", StatusCancelled)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to cancel stock request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.Conflictf("stock request %d was concurrently modified", requestID)
	}

	logrus.WithFields(logrus.Fields{
		"stock_request_id": requestID,
		"request_number":   request.RequestNumber,
		"cancelled_by":     actor.UserID,
	}).Info("Stock request cancelled")

	return s.Get(requestID)
}

// Get retrieves a single stock request by ID
func (s *Service) Get(id uint) (*StockRequest, error) {
	var request StockRequest
	if err := s.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("stock request %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve stock request: %w", err)
	}
	return &request, nil
}

// List retrieves stock requests with filtering and pagination
func (s *Service) List(req *ListRequest) ([]StockRequest, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&StockRequest{})
	if req.StoreID > 0 {
		query = query.Where("store_id = ?", req.StoreID)
	}
	if req.ProductionHouseID > 0 {
		query = query.Where("production_house_id = ?", req.ProductionHouseID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stock requests: %w", err)
	}

	var requests []StockRequest
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("id DESC").Offset(offset).Limit(req.Limit).Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve stock requests: %w", err)
	}

	return requests, total, nil
}

func appendNotes(existing, addition string) string {
	if addition == "" {
		return existing
	}
	if existing == "" {
		return addition
	}
	return existing + "\n" + addition
}
