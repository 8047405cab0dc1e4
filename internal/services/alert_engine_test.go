// internal/services/alert_engine_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodl/inventory/internal/models"
)

var alertNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func purchaseBatch(product *models.Product, bestBefore time.Time, remaining int) models.PurchaseBatch {
	batch := models.PurchaseBatch{
		ProductID:         product.ID,
		BestBeforeDate:    models.NewDate(bestBefore),
		PortionedCount:    remaining,
		RemainingPortions: remaining,
		Product:           product,
	}
	batch.ID = uuid.New()
	return batch
}

func thawedBatch(parent *models.PurchaseBatch, expiry time.Time, remaining int) models.ThawedBatch {
	batch := models.ThawedBatch{
		PurchaseBatchID:   parent.ID,
		ExpiryDate:        expiry,
		PortionsThawed:    remaining,
		RemainingPortions: remaining,
		Status:            models.ThawStatusActive,
		PurchaseBatch:     parent,
	}
	batch.ID = uuid.New()
	return batch
}

func namedProduct(name string) *models.Product {
	product := &models.Product{Name: name, ReceivedState: models.ReceivedStateFrozen}
	product.ID = uuid.New()
	return product
}

func TestDaysUntilExpiry(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"exactly now", alertNow, 0},
		{"one millisecond ahead", alertNow.Add(time.Millisecond), 1},
		{"one day ahead", alertNow.Add(24 * time.Hour), 1},
		{"just over a day", alertNow.Add(25 * time.Hour), 2},
		{"one hour ago", alertNow.Add(-time.Hour), 0},
		{"one day ago", alertNow.Add(-24 * time.Hour), -1},
		{"midnight today", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{"midnight in five days", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(tt.expiry, alertNow))
		})
	}
}

func TestGenerateAlertsPurchaseBatches(t *testing.T) {
	product := namedProduct("Salmon Fillet")
	expired := purchaseBatch(product, alertNow.AddDate(0, 0, -1), 4)
	soon := purchaseBatch(product, alertNow.AddDate(0, 0, 2), 6)
	later := purchaseBatch(product, alertNow.AddDate(0, 0, 5), 8)
	empty := purchaseBatch(product, alertNow.AddDate(0, 0, -3), 0)

	alerts := GenerateAlerts(LedgerSnapshot{
		Products:  []models.Product{*product},
		Purchases: []models.PurchaseBatch{expired, soon, later, empty},
	}, alertNow, DefaultAlertPolicy())

	require.Len(t, alerts, 2)

	assert.Equal(t, "alert_"+expired.ID.String(), alerts[0].ID)
	assert.Equal(t, models.AlertTypeExpired, alerts[0].Type)
	assert.Equal(t, "Salmon Fillet", alerts[0].ProductName)
	assert.Equal(t, 4, alerts[0].Quantity)
	assert.Equal(t, -1, alerts[0].DaysUntilExpiry)
	assert.Nil(t, alerts[0].BatchType)
	assert.Equal(t, "active", alerts[0].Status)

	// best-before is midnight, so two calendar days ahead is under two full days
	assert.Equal(t, "alert_"+soon.ID.String(), alerts[1].ID)
	assert.Equal(t, models.AlertTypeExpiringSoon, alerts[1].Type)
	assert.Equal(t, 2, alerts[1].DaysUntilExpiry)
}

func TestGenerateAlertsThawedBatches(t *testing.T) {
	product := namedProduct("Prawns")
	parent := purchaseBatch(product, alertNow.AddDate(0, 1, 0), 5)
	thawed := thawedBatch(&parent, alertNow.Add(36*time.Hour), 3)
	spent := thawedBatch(&parent, alertNow.Add(-time.Hour), 0)

	alerts := GenerateAlerts(LedgerSnapshot{
		Products:  []models.Product{*product},
		Purchases: []models.PurchaseBatch{parent},
		Thawed:    []models.ThawedBatch{thawed, spent},
	}, alertNow, DefaultAlertPolicy())

	require.Len(t, alerts, 1)
	assert.Equal(t, "alert_thaw_"+thawed.ID.String(), alerts[0].ID)
	assert.Equal(t, models.AlertTypeExpiringSoon, alerts[0].Type)
	assert.Equal(t, 2, alerts[0].DaysUntilExpiry)
	require.NotNil(t, alerts[0].BatchType)
	assert.Equal(t, models.BatchTypeThawed, *alerts[0].BatchType)
	assert.Equal(t, "Prawns", alerts[0].ProductName)
}

func TestGenerateAlertsOrdersPurchasesFirst(t *testing.T) {
	product := namedProduct("Prawns")
	parent := purchaseBatch(product, alertNow.AddDate(0, 0, 1), 5)
	thawed := thawedBatch(&parent, alertNow.Add(-time.Minute), 2)

	alerts := GenerateAlerts(LedgerSnapshot{
		Purchases: []models.PurchaseBatch{parent},
		Thawed:    []models.ThawedBatch{thawed},
	}, alertNow, DefaultAlertPolicy())

	require.Len(t, alerts, 2)
	assert.Nil(t, alerts[0].BatchType)
	assert.NotNil(t, alerts[1].BatchType)
	assert.Equal(t, models.AlertTypeExpired, alerts[1].Type)
}

func TestGenerateAlertsProductNames(t *testing.T) {
	product := namedProduct("Duck Breast")

	// joined product missing, resolved by id
	unjoined := purchaseBatch(product, alertNow, 1)
	unjoined.Product = nil

	// product gone entirely
	orphan := purchaseBatch(namedProduct("Deleted"), alertNow, 1)
	orphan.Product = nil

	// thawed batch without its parent joined, resolved through the purchase ledger
	parent := purchaseBatch(product, alertNow.AddDate(0, 1, 0), 1)
	thawed := thawedBatch(&parent, alertNow, 1)
	thawed.PurchaseBatch = nil

	// thawed batch whose parent is not in the snapshot
	lost := thawedBatch(&parent, alertNow, 1)
	lost.PurchaseBatch = nil
	lost.PurchaseBatchID = uuid.New()

	alerts := GenerateAlerts(LedgerSnapshot{
		Products:  []models.Product{*product},
		Purchases: []models.PurchaseBatch{unjoined, orphan, parent},
		Thawed:    []models.ThawedBatch{thawed, lost},
	}, alertNow, DefaultAlertPolicy())

	require.Len(t, alerts, 4)
	assert.Equal(t, "Duck Breast", alerts[0].ProductName)
	assert.Equal(t, "Unknown", alerts[1].ProductName)
	assert.Equal(t, "Duck Breast", alerts[2].ProductName)
	assert.Equal(t, "Unknown", alerts[3].ProductName)
}

func TestGenerateAlertsPolicy(t *testing.T) {
	product := namedProduct("Salmon Fillet")
	batch := purchaseBatch(product, alertNow.AddDate(0, 0, 4), 2)
	snapshot := LedgerSnapshot{Purchases: []models.PurchaseBatch{batch}}

	assert.Empty(t, GenerateAlerts(snapshot, alertNow, DefaultAlertPolicy()))

	wide := AlertPolicy{WindowDays: 5, ExpiredThresholdDays: 0}
	alerts := GenerateAlerts(snapshot, alertNow, wide)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertTypeExpiringSoon, alerts[0].Type)

	strict := AlertPolicy{WindowDays: 5, ExpiredThresholdDays: 4}
	alerts = GenerateAlerts(snapshot, alertNow, strict)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertTypeExpired, alerts[0].Type)
}

func TestGenerateAlertsEmpty(t *testing.T) {
	alerts := GenerateAlerts(LedgerSnapshot{}, alertNow, DefaultAlertPolicy())
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}
