// internal/models/waste_entry.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type WasteEntry struct {
	BaseModel
	ProductID         uuid.UUID   `json:"product_id" gorm:"type:uuid;not null;index"`
	PurchaseBatchID   *uuid.UUID  `json:"purchase_batch_id,omitempty" gorm:"type:uuid;index"`
	ThawedBatchID     *uuid.UUID  `json:"thawed_batch_id,omitempty" gorm:"type:uuid;index"`
	BatchType         *BatchType  `json:"batch_type,omitempty" gorm:"type:varchar(20)"`
	DateDiscarded     time.Time   `json:"date_discarded" gorm:"not null;index"`
	QuantityDiscarded int         `json:"quantity_discarded" gorm:"not null"`
	Reason            WasteReason `json:"reason" gorm:"type:varchar(20);not null;index"`
	Notes             *string     `json:"notes,omitempty" gorm:"type:text"`
	DiscardedBy       *string     `json:"discarded_by,omitempty" gorm:"size:100"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// BatchRef names the batch a discard is drawn from. A zero BatchRef means
// the discard is not tied to any batch and deducts no stock.
type BatchRef struct {
	Type BatchType
	ID   uuid.UUID
}

func PurchaseRef(id uuid.UUID) BatchRef {
	return BatchRef{Type: BatchTypePurchase, ID: id}
}

func ThawedRef(id uuid.UUID) BatchRef {
	return BatchRef{Type: BatchTypeThawed, ID: id}
}

func (r BatchRef) IsZero() bool {
	return r.Type == ""
}
