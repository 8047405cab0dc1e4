// internal/services/purchase_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/noodl/inventory/internal/models"
	"github.com/noodl/inventory/internal/utils"
)

// PurchaseService is the purchase batch ledger. It records stock as received
// and owns the remaining_portions counter of every purchase batch.
type PurchaseService struct {
	db      *gorm.DB
	catalog *CatalogService
	metrics *Metrics
}

type CreatePurchaseRequest struct {
	ProductID        uuid.UUID        `json:"product_id" validate:"required"`
	PurchaseDate     models.Date      `json:"purchase_date"`
	BestBeforeDate   models.Date      `json:"best_before_date"`
	QuantityReceived decimal.Decimal  `json:"quantity_received"`
	QuantityUnit     string           `json:"quantity_unit" validate:"required,max=20"`
	CostPerUnit      *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Supplier         *string          `json:"supplier,omitempty" validate:"omitempty,max=255"`
	Notes            *string          `json:"notes,omitempty"`
}

// UpdatePurchaseRequest edits a batch. RemainingPortions overrides the stock
// on hand; when nil the batch is reset to its full portioned count.
type UpdatePurchaseRequest struct {
	PurchaseDate      models.Date      `json:"purchase_date"`
	BestBeforeDate    models.Date      `json:"best_before_date"`
	QuantityReceived  decimal.Decimal  `json:"quantity_received"`
	QuantityUnit      string           `json:"quantity_unit" validate:"required,max=20"`
	RemainingPortions *int             `json:"remaining_portions,omitempty"`
	CostPerUnit       *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Supplier          *string          `json:"supplier,omitempty" validate:"omitempty,max=255"`
	Notes             *string          `json:"notes,omitempty"`
}

func NewPurchaseService(db *gorm.DB, catalog *CatalogService, metrics *Metrics) *PurchaseService {
	return &PurchaseService{
		db:      db,
		catalog: catalog,
		metrics: metrics,
	}
}

// PortionCount returns floor(quantity / portionSize). The division is done in
// decimal so 0.3 kg of 0.1 kg portions yields 3, not 2.
func PortionCount(quantity, portionSize decimal.Decimal) (int, error) {
	if !portionSize.IsPositive() {
		return 0, fmt.Errorf("portion size %s cannot portion stock: %w", portionSize, ErrInvalidState)
	}
	return int(quantity.Div(portionSize).Floor().IntPart()), nil
}

func validateBatchFields(purchaseDate, bestBefore models.Date, quantity decimal.Decimal, cost *decimal.Decimal) error {
	if purchaseDate.IsZero() {
		return invalidArgument("purchase_date is required")
	}
	if bestBefore.IsZero() {
		return invalidArgument("best_before_date is required")
	}
	if !quantity.IsPositive() {
		return invalidArgument("quantity_received must be positive")
	}
	if cost != nil && cost.IsNegative() {
		return invalidArgument("cost_per_unit must not be negative")
	}
	return nil
}

func (s *PurchaseService) Create(req *CreatePurchaseRequest) (*models.PurchaseBatch, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}
	if err := validateBatchFields(req.PurchaseDate, req.BestBeforeDate, req.QuantityReceived, req.CostPerUnit); err != nil {
		return nil, err
	}

	product, err := s.catalog.Get(req.ProductID)
	if err != nil {
		return nil, err
	}

	portions, err := PortionCount(req.QuantityReceived, product.PortionSize)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", product.Name, err)
	}

	batch := &models.PurchaseBatch{
		ProductID:         product.ID,
		PurchaseDate:      req.PurchaseDate,
		BestBeforeDate:    req.BestBeforeDate,
		QuantityReceived:  req.QuantityReceived,
		QuantityUnit:      req.QuantityUnit,
		PortionedCount:    portions,
		RemainingPortions: portions,
		CostPerUnit:       req.CostPerUnit,
		Supplier:          utils.NilIfBlank(req.Supplier),
		Notes:             utils.NilIfBlank(req.Notes),
	}

	if err := s.db.Create(batch).Error; err != nil {
		return nil, fmt.Errorf("failed to create purchase batch: %w", err)
	}
	batch.Product = product

	s.metrics.PurchaseLogged(portions)
	logrus.WithFields(logrus.Fields{
		"batch_id":    batch.ID,
		"product":     product.Name,
		"portions":    portions,
		"best_before": batch.BestBeforeDate.String(),
	}).Info("Purchase batch logged")

	return batch, nil
}

func (s *PurchaseService) Update(id uuid.UUID, req *UpdatePurchaseRequest) (*models.PurchaseBatch, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(err)
	}
	if err := validateBatchFields(req.PurchaseDate, req.BestBeforeDate, req.QuantityReceived, req.CostPerUnit); err != nil {
		return nil, err
	}

	var batch models.PurchaseBatch
	if err := s.db.First(&batch, "id = ?", id).Error; err != nil {
		return nil, lookupError("purchase batch", id, err)
	}

	product, err := s.catalog.Get(batch.ProductID)
	if err != nil {
		return nil, err
	}

	portions, err := PortionCount(req.QuantityReceived, product.PortionSize)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", product.Name, err)
	}

	remaining := portions
	if req.RemainingPortions != nil {
		remaining = *req.RemainingPortions
		if remaining < 0 || remaining > portions {
			return nil, invalidArgument("remaining_portions must be between 0 and %d", portions)
		}
	} else if batch.RemainingPortions != portions {
		logrus.WithFields(logrus.Fields{
			"batch_id": batch.ID,
			"previous": batch.RemainingPortions,
			"restored": portions,
		}).Warn("Purchase batch edited without remaining_portions; stock reset to full portioned count")
	}

	updates := map[string]interface{}{
		"purchase_date":      req.PurchaseDate,
		"best_before_date":   req.BestBeforeDate,
		"quantity_received":  req.QuantityReceived,
		"quantity_unit":      req.QuantityUnit,
		"portioned_count":    portions,
		"remaining_portions": remaining,
		"cost_per_unit":      req.CostPerUnit,
		"supplier":           utils.NilIfBlank(req.Supplier),
		"notes":              utils.NilIfBlank(req.Notes),
	}

	if err := s.db.Model(&batch).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update purchase batch: %w", err)
	}

	return s.Get(id)
}

func (s *PurchaseService) Get(id uuid.UUID) (*models.PurchaseBatch, error) {
	return s.get(s.db, id)
}

func (s *PurchaseService) get(db *gorm.DB, id uuid.UUID) (*models.PurchaseBatch, error) {
	var batch models.PurchaseBatch
	if err := db.Preload("Product").Preload("ThawedBatches").First(&batch, "id = ?", id).Error; err != nil {
		return nil, lookupError("purchase batch", id, err)
	}
	return &batch, nil
}

// List returns every purchase batch, newest purchase first, with its product
// and thawed batches attached.
func (s *PurchaseService) List() ([]models.PurchaseBatch, error) {
	var batches []models.PurchaseBatch
	if err := s.db.Preload("Product").Preload("ThawedBatches", func(db *gorm.DB) *gorm.DB {
		return db.Order("thaw_date DESC")
	}).Order("purchase_date DESC").Order("created_at DESC").Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch purchase batches: %w", err)
	}
	return batches, nil
}

// Recent returns the latest purchase batches for the dashboard.
func (s *PurchaseService) Recent(limit int) ([]models.PurchaseBatch, error) {
	var batches []models.PurchaseBatch
	if err := s.db.Preload("Product").
		Order("purchase_date DESC").Order("created_at DESC").
		Limit(limit).Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent purchase batches: %w", err)
	}
	return batches, nil
}

// CountInStock returns the number of purchase batches with portions left.
func (s *PurchaseService) CountInStock() (int64, error) {
	var count int64
	if err := s.db.Model(&models.PurchaseBatch{}).Where("remaining_portions > 0").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count purchase batches: %w", err)
	}
	return count, nil
}

// DecrementRemaining removes amount portions from the batch, failing with
// ErrInsufficientStock rather than going below zero. tx must be the caller's
// transaction.
func (s *PurchaseService) DecrementRemaining(tx *gorm.DB, id uuid.UUID, amount int) error {
	return decrementStrict(tx, &models.PurchaseBatch{}, "purchase batch", id, amount)
}

// DecrementRemainingFloor removes up to amount portions, stopping at zero.
func (s *PurchaseService) DecrementRemainingFloor(tx *gorm.DB, id uuid.UUID, amount int) error {
	return decrementFloor(tx, &models.PurchaseBatch{}, "purchase batch", id, amount)
}
