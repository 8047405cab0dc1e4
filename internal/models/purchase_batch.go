// internal/models/purchase_batch.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseBatch struct {
	BaseModel
	ProductID         uuid.UUID        `json:"product_id" gorm:"type:uuid;not null;index"`
	PurchaseDate      Date             `json:"purchase_date" gorm:"not null;index"`
	BestBeforeDate    Date             `json:"best_before_date" gorm:"not null;index"`
	QuantityReceived  decimal.Decimal  `json:"quantity_received" gorm:"type:decimal(12,3);not null"`
	QuantityUnit      string           `json:"quantity_unit" gorm:"size:20;not null"`
	PortionedCount    int              `json:"portioned_count" gorm:"not null"`
	RemainingPortions int              `json:"remaining_portions" gorm:"not null;index"`
	CostPerUnit       *decimal.Decimal `json:"cost_per_unit,omitempty" gorm:"type:decimal(10,2)"`
	Supplier          *string          `json:"supplier,omitempty" gorm:"size:255"`
	Notes             *string          `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Product       *Product      `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	ThawedBatches []ThawedBatch `json:"thawed_batches,omitempty" gorm:"foreignKey:PurchaseBatchID"`
}
