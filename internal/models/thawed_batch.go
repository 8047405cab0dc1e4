// internal/models/thawed_batch.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type ThawedBatch struct {
	BaseModel
	PurchaseBatchID   uuid.UUID  `json:"purchase_batch_id" gorm:"type:uuid;not null;index"`
	ThawDate          time.Time  `json:"thaw_date" gorm:"not null;index"`
	PortionsThawed    int        `json:"portions_thawed" gorm:"not null"`
	ExpiryDate        time.Time  `json:"expiry_date" gorm:"not null;index"`
	Status            ThawStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	RemainingPortions int        `json:"remaining_portions" gorm:"not null;index"`

	// Relationships
	PurchaseBatch *PurchaseBatch `json:"purchase_batch,omitempty" gorm:"foreignKey:PurchaseBatchID"`
}
