// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name            string          `json:"name" gorm:"size:255;not null;index"`
	ReceivedState   ReceivedState   `json:"received_state" gorm:"type:varchar(10);not null"`
	PortionSize     decimal.Decimal `json:"portion_size" gorm:"type:decimal(12,3);not null;default:0"`
	PortionUnit     string          `json:"portion_unit" gorm:"size:20;not null"`
	ShelfLifeFresh  int             `json:"shelf_life_fresh" gorm:"not null;default:0"`
	ShelfLifeThawed int             `json:"shelf_life_thawed" gorm:"not null;default:0"`
	TrackByUnit     bool            `json:"track_by_unit" gorm:"not null;default:false"`
}
