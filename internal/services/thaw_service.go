// internal/services/thaw_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noodl/inventory/internal/database"
	"github.com/noodl/inventory/internal/models"
	"github.com/noodl/inventory/internal/utils"
)

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// ThawService is the thaw ledger. A thaw moves portions out of a frozen
// purchase batch into a new thawed batch with its own expiry clock.
type ThawService struct {
	db        *gorm.DB
	purchases *PurchaseService
	metrics   *Metrics
	now       Clock
}

type ThawRequest struct {
	PurchaseBatchID uuid.UUID `json:"purchase_batch_id" validate:"required"`
	PortionsThawed  int       `json:"portions_thawed" validate:"required,gt=0"`
}

func NewThawService(db *gorm.DB, purchases *PurchaseService, metrics *Metrics, now Clock) *ThawService {
	if now == nil {
		now = time.Now
	}
	return &ThawService{
		db:        db,
		purchases: purchases,
		metrics:   metrics,
		now:       now,
	}
}

// Thaw creates the thawed batch and debits the purchase batch in one
// transaction; either both writes land or neither does.
func (s *ThawService) Thaw(req *ThawRequest) (*models.ThawedBatch, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}

	var thawed *models.ThawedBatch
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var batch models.PurchaseBatch
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Product").
			First(&batch, "id = ?", req.PurchaseBatchID).Error; err != nil {
			return lookupError("purchase batch", req.PurchaseBatchID, err)
		}
		if batch.Product == nil {
			return fmt.Errorf("product %s: %w", batch.ProductID, ErrNotFound)
		}

		if req.PortionsThawed > batch.RemainingPortions {
			return invalidArgument("cannot thaw %d portions, only %d remaining", req.PortionsThawed, batch.RemainingPortions)
		}

		thawDate := s.now().UTC()
		thawed = &models.ThawedBatch{
			PurchaseBatchID:   batch.ID,
			ThawDate:          thawDate,
			PortionsThawed:    req.PortionsThawed,
			ExpiryDate:        thawDate.AddDate(0, 0, batch.Product.ShelfLifeThawed),
			Status:            models.ThawStatusActive,
			RemainingPortions: req.PortionsThawed,
		}
		if err := tx.Create(thawed).Error; err != nil {
			return fmt.Errorf("failed to create thawed batch: %w", err)
		}

		if err := s.purchases.DecrementRemaining(tx, batch.ID, req.PortionsThawed); err != nil {
			return err
		}

		batch.RemainingPortions -= req.PortionsThawed
		batch.ThawedBatches = nil
		thawed.PurchaseBatch = &batch
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PortionsThawed(thawed.PortionsThawed)
	logrus.WithFields(logrus.Fields{
		"thawed_batch_id":   thawed.ID,
		"purchase_batch_id": thawed.PurchaseBatchID,
		"portions":          thawed.PortionsThawed,
		"expires":           thawed.ExpiryDate.Format(time.RFC3339),
	}).Info("Portions thawed")

	return thawed, nil
}

func (s *ThawService) Get(id uuid.UUID) (*models.ThawedBatch, error) {
	var batch models.ThawedBatch
	if err := s.db.Preload("PurchaseBatch.Product").First(&batch, "id = ?", id).Error; err != nil {
		return nil, lookupError("thawed batch", id, err)
	}
	return &batch, nil
}

// List returns every thawed batch, latest thaw first, with its purchase
// batch and product attached.
func (s *ThawService) List() ([]models.ThawedBatch, error) {
	var batches []models.ThawedBatch
	if err := s.db.Preload("PurchaseBatch.Product").
		Order("thaw_date DESC").
		Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch thawed batches: %w", err)
	}
	return batches, nil
}

// DecrementRemainingFloor removes up to amount portions from a thawed batch,
// stopping at zero. tx must be the caller's transaction.
func (s *ThawService) DecrementRemainingFloor(tx *gorm.DB, id uuid.UUID, amount int) error {
	return decrementFloor(tx, &models.ThawedBatch{}, "thawed batch", id, amount)
}

func (s *ThawService) getForUpdate(tx *gorm.DB, id uuid.UUID) (*models.ThawedBatch, error) {
	var batch models.ThawedBatch
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("PurchaseBatch").
		First(&batch, "id = ?", id).Error; err != nil {
		return nil, lookupError("thawed batch", id, err)
	}
	return &batch, nil
}
