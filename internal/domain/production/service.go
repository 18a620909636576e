// internal/domain/production/service.go
package production

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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const houseLockTTL = 10 * time.Second

// Service handles production record business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	locker lock.Locker
}

// NewService creates a new production service
func NewService(db *gorm.DB, cfg *config.Config, locker lock.Locker) *Service {
	return &Service{
		db:     db,
		config: cfg,
		locker: locker,
	}
}

// SubmitRequest represents production record submission data
type SubmitRequest struct {
	ProductionHouseID uint               `json:"production_house_id" binding:"required"`
	Date              string             `json:"date" binding:"required"` // YYYY-MM-DD
	Breakdown         BreakdownMap       `json:"breakdown" binding:"required"`
	Wastage           map[string]float64 `json:"wastage,omitempty"`
}

// ListRequest represents production record list query parameters
type ListRequest struct {
	Page              int            `form:"page,default=1"`
	Limit             int            `form:"limit,default=20"`
	ProductionHouseID uint           `form:"production_house_id"`
	Status            ApprovalStatus `form:"status"`
}

// Submit creates the day's production record for a house, or updates
// the still-pending record for the same (house, date) in place. A
// second record for the same key is never created: duplicates would
// double-credit the ledger at approval time.
func (s *Service) Submit(actor auth.Actor, req *SubmitRequest) (*ProductionRecord, error) {
	if !actor.AssociatedWithHouse(req.ProductionHouseID) {
		return nil, apperror.Validationf("actor is not associated with production house %d", req.ProductionHouseID)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperror.Validationf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	date = NormalizeDate(date)

	if err := validateBreakdown(req.Breakdown); err != nil {
		return nil, err
	}

	var house catalog.ProductionHouse
	if err := s.db.First(&house, req.ProductionHouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("production house %d not found", req.ProductionHouseID)
		}
		return nil, fmt.Errorf("failed to load production house: %w", err)
	}

	wastage := datatypes.JSONMap{}
	for sku, qty := range req.Wastage {
		if qty < 0 {
			return nil, apperror.Validationf("wastage for %q must not be negative, got %v", sku, qty)
		}
		wastage[sku] = qty
	}

	var record ProductionRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing ProductionRecord
		findErr := tx.Where("production_house_id = ? AND date = ?", req.ProductionHouseID, date).
			First(&existing).Error

		switch {
		case findErr == nil && existing.IsApproved():
			return apperror.Conflictf(
				"an approved production record already exists for house %d on %s",
				req.ProductionHouseID, date.Format("2006-01-02"))

		case findErr == nil:
			// Pending record for the same day: replace its contents.
			// Conditioned on the status so an approval landing in
			// between surfaces as a conflict instead of silently
			// rewriting an approved record.
			res := tx.Model(&ProductionRecord{}).
				Where("id = ? AND approval_status = ?", existing.ID, ApprovalStatusPending).
				Updates(map[string]interface{}{
					"breakdown":  req.Breakdown,
					"wastage":    wastage,
					"updated_by": actor.UserID,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update production record: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperror.Conflictf(
					"production record for house %d on %s was approved concurrently",
					req.ProductionHouseID, date.Format("2006-01-02"))
			}
			if err := tx.First(&record, existing.ID).Error; err != nil {
				return fmt.Errorf("failed to reload production record: %w", err)
			}
			return nil

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			record = ProductionRecord{
				ProductionHouseID: req.ProductionHouseID,
				Date:              date,
				Breakdown:         req.Breakdown,
				Wastage:           wastage,
				ApprovalStatus:    ApprovalStatusPending,
				CreatedBy:         actor.UserID,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create production record: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("failed to check existing production record: %w", findErr)
		}
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"production_record_id": record.ID,
		"production_house_id":  record.ProductionHouseID,
		"date":                 record.Date.Format("2006-01-02"),
		"created_by":           actor.UserID,
	}).Info("Production record submitted")

	return &record, nil
}

// Approve transitions a pending record to approved and credits each
// SKU's final output to the house ledger. The credit and the status
// flip commit as one transaction; a record can never be observed as
// approved-but-uncredited or credited twice.
func (s *Service) Approve(ctx context.Context, actor auth.Actor, recordID uint) (*ProductionRecord, error) {
	record, err := s.Get(recordID)
	if err != nil {
		return nil, err
	}

	if !actor.AssociatedWithHouse(record.ProductionHouseID) {
		return nil, apperror.Validationf("actor is not associated with production house %d", record.ProductionHouseID)
	}
	if record.IsApproved() {
		return nil, apperror.InvalidStatef("production record %d is already approved", recordID)
	}

	release, err := s.locker.Acquire(ctx, lock.ProductionHouseKey(record.ProductionHouseID), houseLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock production house %d: %w", record.ProductionHouseID, err)
	}
	defer release()

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional update keyed on the current status: of two
		// concurrent approvals at most one flips the record.
		res := tx.Model(&ProductionRecord{}).
			Where("id = ? AND approval_status = ?", recordID, ApprovalStatusPending).
			Updates(map[string]interface{}{
				"approval_status": ApprovalStatusApproved,
				"approved_by":     actor.UserID,
				"approved_at":     now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update production record status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.InvalidStatef("production record %d is no longer pending", recordID)
		}

		// Credit what the record holds now, not what the pre-lock read
		// saw: a resubmission may have landed in between.
		var current ProductionRecord
		if err := tx.First(&current, recordID).Error; err != nil {
			return fmt.Errorf("failed to reload production record: %w", err)
		}

		return catalog.CreditInventory(tx, current.ProductionHouseID, current.FinalQuantities(),
			"production_record", recordID, actor.UserID)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"production_record_id": recordID,
		"production_house_id":  record.ProductionHouseID,
		"approved_by":          actor.UserID,
	}).Info("Production record approved and ledger credited")

	return s.Get(recordID)
}

// Get retrieves a single production record by ID
func (s *Service) Get(id uint) (*ProductionRecord, error) {
	var record ProductionRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("production record %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve production record: %w", err)
	}
	return &record, nil
}

// List retrieves production records with filtering and pagination
func (s *Service) List(req *ListRequest) ([]ProductionRecord, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&ProductionRecord{})
	if req.ProductionHouseID > 0 {
		query = query.Where("production_house_id = ?", req.ProductionHouseID)
	}
	if req.Status != "" {
		query = query.Where("approval_status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count production records: %w", err)
	}

	var records []ProductionRecord
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("date DESC").Offset(offset).Limit(req.Limit).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve production records: %w", err)
	}

	return records, total, nil
}

func validateBreakdown(breakdown BreakdownMap) error {
	if len(breakdown) == 0 {
		return apperror.Validationf("breakdown must contain at least one SKU")
	}
	for sku, output := range breakdown {
		if sku == "" {
			return apperror.Validationf("breakdown contains an empty SKU code")
		}
		if output.Final < 0 {
			return apperror.Validationf("final output for %q must not be negative, got %v", sku, output.Final)
		}
		for name, qty := range output.Intermediates {
			if qty < 0 {
				return apperror.Validationf("intermediate %q for %q must not be negative, got %v", name, sku, qty)
			}
		}
	}
	return nil
}
