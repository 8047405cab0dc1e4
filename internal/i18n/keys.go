// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductNotFound = "product.not_found"

	// Purchase batches
	KeyPurchaseCreated  = "purchase.created"
	KeyPurchaseUpdated  = "purchase.updated"
	KeyPurchaseNotFound = "purchase.not_found"

	// Thawed batches
	KeyThawCreated  = "thaw.created"
	KeyThawNotFound = "thaw.not_found"

	// Waste
	KeyWasteRecorded = "waste.recorded"

	// Stock
	KeyStockInsufficient = "stock.insufficient"
	KeyStockInvalidState = "stock.invalid_state"

	// Reports
	KeyReportArchived        = "report.archived"
	KeyReportStorageDisabled = "report.storage_disabled"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationID       = "validation.invalid_id"
)
