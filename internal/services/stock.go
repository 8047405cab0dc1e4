// internal/services/stock.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// decrementStrict subtracts amount from remaining_portions only when the row
// still holds at least amount portions. The check and the write are a single
// statement so concurrent thaws cannot overdraw a batch.
func decrementStrict(tx *gorm.DB, model interface{}, resource string, id uuid.UUID, amount int) error {
	if amount <= 0 {
		return invalidArgument("decrement amount must be positive, got %d", amount)
	}

	result := tx.Model(model).
		Where("id = ? AND remaining_portions >= ?", id, amount).
		UpdateColumn("remaining_portions", gorm.Expr("remaining_portions - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement %s: %w", resource, result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	exists, err := rowExists(tx, model, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", resource, id, ErrNotFound)
	}
	return fmt.Errorf("%s %s cannot release %d portions: %w", resource, id, amount, ErrInsufficientStock)
}

// decrementFloor subtracts amount from remaining_portions, clamping at zero.
func decrementFloor(tx *gorm.DB, model interface{}, resource string, id uuid.UUID, amount int) error {
	if amount <= 0 {
		return invalidArgument("decrement amount must be positive, got %d", amount)
	}

	result := tx.Model(model).
		Where("id = ?", id).
		UpdateColumn("remaining_portions",
			gorm.Expr("CASE WHEN remaining_portions > ? THEN remaining_portions - ? ELSE 0 END", amount, amount))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement %s: %w", resource, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", resource, id, ErrNotFound)
	}
	return nil
}

func rowExists(tx *gorm.DB, model interface{}, id uuid.UUID) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
