// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced product or batch does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument covers missing fields, non-positive quantities and
	// requests that exceed the stock on hand.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned when stored data makes an operation
	// undefined, such as portioning a product whose portion size is zero.
	ErrInvalidState = errors.New("invalid state")
	// ErrInsufficientStock is returned by the strict decrement when a batch
	// no longer holds the requested portions.
	ErrInsufficientStock = errors.New("insufficient stock")
)

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// validationFailed keeps the validator errors reachable with errors.As so
// handlers can report per-field details.
func validationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}

// lookupError translates a gorm lookup failure for the named resource.
func lookupError(resource string, id interface{}, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", resource, id, ErrNotFound)
	}
	return fmt.Errorf("database error: %w", err)
}
