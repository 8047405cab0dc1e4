// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noodl/inventory/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("received_state", validateReceivedState)
	validate.RegisterValidation("waste_reason", validateWasteReason)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateReceivedState(fl validator.FieldLevel) bool {
	switch models.ReceivedState(fl.Field().String()) {
	case models.ReceivedStateCold, models.ReceivedStateFrozen:
		return true
	}
	return false
}

func validateWasteReason(fl validator.FieldLevel) bool {
	switch models.WasteReason(fl.Field().String()) {
	case models.WasteReasonExpired, models.WasteReasonSpoiled,
		models.WasteReasonContaminated, models.WasteReasonOther:
		return true
	}
	return false
}

// NilIfBlank drops empty or whitespace-only optional text.
func NilIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// GetValidationErrors unwraps validator errors, also when wrapped by a
// service error.
func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   toSnakeCase(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func getValidationMessage(e validator.FieldError) string {
	field := toSnakeCase(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + e.Param()
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "received_state":
		return "received_state must be Cold or Frozen"
	case "waste_reason":
		return "reason must be one of expired, spoiled, contaminated, other"
	default:
		return field + " is invalid"
	}
}
