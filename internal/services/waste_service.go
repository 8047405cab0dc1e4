// internal/services/waste_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/noodl/inventory/internal/database"
	"github.com/noodl/inventory/internal/models"
	"github.com/noodl/inventory/internal/utils"
)

// WasteService is the waste ledger: an append-only log of discards that
// debits the batch the portions came from.
type WasteService struct {
	db        *gorm.DB
	catalog   *CatalogService
	purchases *PurchaseService
	thaws     *ThawService
	metrics   *Metrics
	now       Clock
}

type DiscardRequest struct {
	ProductID         uuid.UUID          `json:"product_id" validate:"required"`
	QuantityDiscarded int                `json:"quantity_discarded" validate:"required,gt=0"`
	Reason            models.WasteReason `json:"reason" validate:"required,waste_reason"`
	BatchType         string             `json:"batch_type,omitempty"`
	PurchaseBatchID   *uuid.UUID         `json:"purchase_batch_id,omitempty"`
	ThawedBatchID     *uuid.UUID         `json:"thawed_batch_id,omitempty"`
	Notes             *string            `json:"notes,omitempty"`
	DiscardedBy       *string            `json:"discarded_by,omitempty" validate:"omitempty,max=100"`
}

// BatchRef resolves the batch_type discriminator and the two optional ids
// into a single reference. Anything short of "purchase" or "thawed" with its
// matching id yields the zero BatchRef: the discard is still recorded but
// no stock is deducted.
func (r *DiscardRequest) BatchRef() models.BatchRef {
	switch models.BatchType(strings.TrimSpace(r.BatchType)) {
	case models.BatchTypePurchase:
		if r.PurchaseBatchID != nil && *r.PurchaseBatchID != uuid.Nil {
			return models.PurchaseRef(*r.PurchaseBatchID)
		}
	case models.BatchTypeThawed:
		if r.ThawedBatchID != nil && *r.ThawedBatchID != uuid.Nil {
			return models.ThawedRef(*r.ThawedBatchID)
		}
	}
	return models.BatchRef{}
}

func NewWasteService(db *gorm.DB, catalog *CatalogService, purchases *PurchaseService, thaws *ThawService, metrics *Metrics, now Clock) *WasteService {
	if now == nil {
		now = time.Now
	}
	return &WasteService{
		db:        db,
		catalog:   catalog,
		purchases: purchases,
		thaws:     thaws,
		metrics:   metrics,
		now:       now,
	}
}

// Discard records a waste entry and, when it names a batch, takes the
// portions out of that batch, stopping at zero. Every call records a new
// entry; identical requests are not collapsed.
func (s *WasteService) Discard(req *DiscardRequest) (*models.WasteEntry, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}
	ref := req.BatchRef()

	entry := &models.WasteEntry{
		ProductID:         req.ProductID,
		DateDiscarded:     s.now().UTC(),
		QuantityDiscarded: req.QuantityDiscarded,
		Reason:            req.Reason,
		Notes:             utils.NilIfBlank(req.Notes),
		DiscardedBy:       utils.NilIfBlank(req.DiscardedBy),
	}
	if batchType := strings.TrimSpace(req.BatchType); batchType != "" {
		bt := models.BatchType(batchType)
		entry.BatchType = &bt
	}
	if req.PurchaseBatchID != nil && *req.PurchaseBatchID != uuid.Nil {
		id := *req.PurchaseBatchID
		entry.PurchaseBatchID = &id
	}
	if req.ThawedBatchID != nil && *req.ThawedBatchID != uuid.Nil {
		id := *req.ThawedBatchID
		entry.ThawedBatchID = &id
	}
	if ref.IsZero() && entry.BatchType != nil {
		logrus.WithFields(logrus.Fields{
			"product_id": req.ProductID,
			"batch_type": req.BatchType,
		}).Warn("Waste batch reference incomplete, no stock deducted")
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		product, err := s.catalog.get(tx, req.ProductID)
		if err != nil {
			return err
		}
		entry.Product = product

		if err := s.checkBatchProduct(tx, ref, product.ID); err != nil {
			return err
		}

		if err := tx.Omit("Product").Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create waste entry: %w", err)
		}

		switch ref.Type {
		case models.BatchTypePurchase:
			return s.purchases.DecrementRemainingFloor(tx, ref.ID, req.QuantityDiscarded)
		case models.BatchTypeThawed:
			return s.thaws.DecrementRemainingFloor(tx, ref.ID, req.QuantityDiscarded)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PortionsWasted(string(entry.Reason), string(ref.Type), entry.QuantityDiscarded)
	logrus.WithFields(logrus.Fields{
		"waste_entry_id": entry.ID,
		"product_id":     entry.ProductID,
		"batch_type":     ref.Type,
		"batch_id":       ref.ID,
		"quantity":       entry.QuantityDiscarded,
		"reason":         entry.Reason,
	}).Info("Waste recorded")

	return entry, nil
}

// checkBatchProduct makes sure the referenced batch exists. A batch that
// holds a different product than the entry is logged, not rejected.
func (s *WasteService) checkBatchProduct(tx *gorm.DB, ref models.BatchRef, productID uuid.UUID) error {
	var batchProductID uuid.UUID
	switch ref.Type {
	case models.BatchTypePurchase:
		batch, err := s.purchases.get(tx, ref.ID)
		if err != nil {
			return err
		}
		batchProductID = batch.ProductID
	case models.BatchTypeThawed:
		batch, err := s.thaws.getForUpdate(tx, ref.ID)
		if err != nil {
			return err
		}
		if batch.PurchaseBatch == nil {
			return fmt.Errorf("purchase batch %s: %w", batch.PurchaseBatchID, ErrNotFound)
		}
		batchProductID = batch.PurchaseBatch.ProductID
	default:
		return nil
	}

	if batchProductID != productID {
		logrus.WithFields(logrus.Fields{
			"batch_type":       ref.Type,
			"batch_id":         ref.ID,
			"product_id":       productID,
			"batch_product_id": batchProductID,
		}).Warn("Waste recorded against a batch of another product")
	}
	return nil
}

// List returns the waste log, most recent discard first.
func (s *WasteService) List(params utils.PaginationParams) ([]models.WasteEntry, int64, error) {
	var total int64
	if err := s.db.Model(&models.WasteEntry{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count waste entries: %w", err)
	}

	query := s.db.Preload("Product").Order("date_discarded DESC")
	query = utils.ApplyPagination(query, params)

	var entries []models.WasteEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch waste entries: %w", err)
	}

	return entries, total, nil
}

// CountSince returns how many discards were recorded at or after since.
func (s *WasteService) CountSince(since time.Time) (int64, error) {
	var count int64
	if err := s.db.Model(&models.WasteEntry{}).Where("date_discarded >= ?", since.UTC()).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count waste entries: %w", err)
	}
	return count, nil
}
