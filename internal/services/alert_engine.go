// internal/services/alert_engine.go
package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/noodl/inventory/internal/models"
)

const (
	DefaultAlertWindowDays      = 2
	DefaultExpiredThresholdDays = 0

	millisecondsPerDay = 24 * 60 * 60 * 1000
	unknownProductName = "Unknown"
	alertStatusActive  = "active"
)

// AlertPolicy decides which batches raise alerts. Batches at WindowDays or
// fewer from expiry raise an alert; at ExpiredThresholdDays or fewer the
// alert is typed expired.
type AlertPolicy struct {
	WindowDays           int
	ExpiredThresholdDays int
}

func DefaultAlertPolicy() AlertPolicy {
	return AlertPolicy{
		WindowDays:           DefaultAlertWindowDays,
		ExpiredThresholdDays: DefaultExpiredThresholdDays,
	}
}

// LedgerSnapshot is the ledger state an alert scan runs over.
type LedgerSnapshot struct {
	Products  []models.Product
	Purchases []models.PurchaseBatch
	Thawed    []models.ThawedBatch
}

// DaysUntilExpiry is ceil((expiry - now) / 1 day) on millisecond timestamps.
// It is zero or negative once the expiry instant has passed.
func DaysUntilExpiry(expiry, now time.Time) int {
	diff := expiry.UnixMilli() - now.UnixMilli()
	return int(math.Ceil(float64(diff) / millisecondsPerDay))
}

// GenerateAlerts returns the full list of active alerts for the snapshot:
// purchase batch alerts first, then thawed batch alerts, each in snapshot
// order. Batches without remaining portions never alert.
func GenerateAlerts(snapshot LedgerSnapshot, now time.Time, policy AlertPolicy) []models.Alert {
	names := newProductNames(snapshot)
	alerts := make([]models.Alert, 0)

	for i := range snapshot.Purchases {
		batch := &snapshot.Purchases[i]
		if batch.RemainingPortions <= 0 {
			continue
		}
		expiry := batch.BestBeforeDate.Time
		days := DaysUntilExpiry(expiry, now)
		if days > policy.WindowDays {
			continue
		}
		alerts = append(alerts, models.Alert{
			ID:              fmt.Sprintf("alert_%s", batch.ID),
			Type:            policy.typeFor(days),
			ProductName:     names.forPurchase(batch),
			BatchID:         batch.ID,
			ExpiryDate:      expiry,
			Quantity:        batch.RemainingPortions,
			DaysUntilExpiry: days,
			Status:          alertStatusActive,
		})
	}

	for i := range snapshot.Thawed {
		batch := &snapshot.Thawed[i]
		if batch.RemainingPortions <= 0 {
			continue
		}
		days := DaysUntilExpiry(batch.ExpiryDate, now)
		if days > policy.WindowDays {
			continue
		}
		batchType := models.BatchTypeThawed
		alerts = append(alerts, models.Alert{
			ID:              fmt.Sprintf("alert_thaw_%s", batch.ID),
			Type:            policy.typeFor(days),
			ProductName:     names.forThawed(batch),
			BatchID:         batch.ID,
			BatchType:       &batchType,
			ExpiryDate:      batch.ExpiryDate,
			Quantity:        batch.RemainingPortions,
			DaysUntilExpiry: days,
			Status:          alertStatusActive,
		})
	}

	return alerts
}

func (p AlertPolicy) typeFor(days int) models.AlertType {
	if days <= p.ExpiredThresholdDays {
		return models.AlertTypeExpired
	}
	return models.AlertTypeExpiringSoon
}

// productNames resolves the product name for a batch: the joined product
// first, then a lookup by id, then "Unknown".
type productNames struct {
	products  map[uuid.UUID]*models.Product
	purchases map[uuid.UUID]*models.PurchaseBatch
}

func newProductNames(snapshot LedgerSnapshot) *productNames {
	n := &productNames{
		products:  make(map[uuid.UUID]*models.Product, len(snapshot.Products)),
		purchases: make(map[uuid.UUID]*models.PurchaseBatch, len(snapshot.Purchases)),
	}
	for i := range snapshot.Products {
		n.products[snapshot.Products[i].ID] = &snapshot.Products[i]
	}
	for i := range snapshot.Purchases {
		n.purchases[snapshot.Purchases[i].ID] = &snapshot.Purchases[i]
	}
	return n
}

func (n *productNames) forPurchase(batch *models.PurchaseBatch) string {
	if batch.Product != nil && batch.Product.Name != "" {
		return batch.Product.Name
	}
	if product, ok := n.products[batch.ProductID]; ok {
		return product.Name
	}
	return unknownProductName
}

func (n *productNames) forThawed(batch *models.ThawedBatch) string {
	parent := batch.PurchaseBatch
	if parent == nil {
		parent = n.purchases[batch.PurchaseBatchID]
	} else if parent.Product == nil {
		if joined, ok := n.purchases[batch.PurchaseBatchID]; ok && joined.Product != nil {
			parent = joined
		}
	}
	if parent == nil {
		return unknownProductName
	}
	return n.forPurchase(parent)
}
