// internal/services/fixture_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noodl/inventory/internal/database"
	"github.com/noodl/inventory/internal/models"
)

type fixture struct {
	db        *gorm.DB
	now       time.Time
	metrics   *Metrics
	catalog   *CatalogService
	purchases *PurchaseService
	thaws     *ThawService
	waste     *WasteService
	alerts    *AlertService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	f := &fixture{
		db:      db,
		now:     time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		metrics: NewMetrics(),
	}
	clock := func() time.Time { return f.now }

	f.catalog = NewCatalogService(db)
	f.purchases = NewPurchaseService(db, f.catalog, f.metrics)
	f.thaws = NewThawService(db, f.purchases, f.metrics, clock)
	f.waste = NewWasteService(db, f.catalog, f.purchases, f.thaws, f.metrics, clock)
	f.alerts = NewAlertService(f.catalog, f.purchases, f.thaws, DefaultAlertPolicy(), f.metrics, clock)
	f.dashboard = NewDashboardService(f.catalog, f.purchases, f.waste, f.alerts, clock)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) createProduct(t *testing.T, name string, state models.ReceivedState, portionSize string, thawedDays int) *models.Product {
	t.Helper()

	product, err := f.catalog.Create(&ProductRequest{
		Name:            name,
		ReceivedState:   state,
		PortionSize:     decimal.RequireFromString(portionSize),
		PortionUnit:     "g",
		ShelfLifeFresh:  3,
		ShelfLifeThawed: thawedDays,
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) createPurchase(t *testing.T, productID uuid.UUID, quantity string, bestBefore time.Time) *models.PurchaseBatch {
	t.Helper()

	batch, err := f.purchases.Create(&CreatePurchaseRequest{
		ProductID:        productID,
		PurchaseDate:     models.NewDate(f.now),
		BestBeforeDate:   models.NewDate(bestBefore),
		QuantityReceived: decimal.RequireFromString(quantity),
		QuantityUnit:     "g",
	})
	require.NoError(t, err)
	return batch
}

func (f *fixture) remaining(t *testing.T, id uuid.UUID) int {
	t.Helper()

	batch, err := f.purchases.Get(id)
	require.NoError(t, err)
	return batch.RemainingPortions
}
