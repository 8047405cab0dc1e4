// internal/services/product_service.go
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

// CatalogService maintains the product catalog and its shelf-life and
// portioning rules.
type CatalogService struct {
	db *gorm.DB
}

type ProductRequest struct {
	Name            string               `json:"name" validate:"required,max=255"`
	ReceivedState   models.ReceivedState `json:"received_state" validate:"required,received_state"`
	PortionSize     decimal.Decimal      `json:"portion_size"`
	PortionUnit     string               `json:"portion_unit" validate:"required,max=20"`
	ShelfLifeFresh  int                  `json:"shelf_life_fresh" validate:"min=0"`
	ShelfLifeThawed int                  `json:"shelf_life_thawed" validate:"min=0"`
	TrackByUnit     bool                 `json:"track_by_unit"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (r *ProductRequest) validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return validationFailed(err)
	}
	// An absent portion size stays zero; purchases against such a product
	// are refused until it is corrected.
	if r.PortionSize.IsNegative() {
		return invalidArgument("portion_size must not be negative")
	}
	return nil
}

func (r *ProductRequest) apply(product *models.Product) {
	product.Name = r.Name
	product.ReceivedState = r.ReceivedState
	product.PortionSize = r.PortionSize
	product.PortionUnit = r.PortionUnit
	product.ShelfLifeFresh = r.ShelfLifeFresh
	product.ShelfLifeThawed = r.ShelfLifeThawed
	product.TrackByUnit = r.TrackByUnit
}

func (s *CatalogService) Create(req *ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{}
	req.apply(product)

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"state":      product.ReceivedState,
	}).Info("Product created")

	return product, nil
}

func (s *CatalogService) Get(id uuid.UUID) (*models.Product, error) {
	return s.get(s.db, id)
}

func (s *CatalogService) get(db *gorm.DB, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		return nil, lookupError("product", id, err)
	}
	return &product, nil
}

func (s *CatalogService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("name ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) Update(id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	req.apply(product)

	if err := s.db.Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Count returns the number of products in the catalog.
func (s *CatalogService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
