// internal/models/alert.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert is derived from the ledgers on every read and never stored.
type Alert struct {
	ID              string     `json:"id"`
	Type            AlertType  `json:"type"`
	ProductName     string     `json:"product_name"`
	BatchID         uuid.UUID  `json:"batch_id"`
	BatchType       *BatchType `json:"batch_type,omitempty"`
	ExpiryDate      time.Time  `json:"expiry_date"`
	Quantity        int        `json:"quantity"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
	Status          string     `json:"status"`
}
