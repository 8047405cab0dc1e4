// internal/services/purchase_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noodl/inventory/internal/models"
)

func TestPortionCount(t *testing.T) {
	tests := []struct {
		quantity    string
		portionSize string
		want        int
	}{
		{"250", "25", 10},
		{"99", "25", 3},
		{"24", "25", 0},
		{"0.3", "0.1", 3},
		{"1.5", "0.25", 6},
	}

	for _, tt := range tests {
		got, err := PortionCount(decimal.RequireFromString(tt.quantity), decimal.RequireFromString(tt.portionSize))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s / %s", tt.quantity, tt.portionSize)
	}

	_, err := PortionCount(decimal.NewFromInt(100), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPurchaseCreate(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Prawns", models.ReceivedStateFrozen, "25", 2)

	batch := f.createPurchase(t, product.ID, "250", f.now.AddDate(0, 0, 30))
	assert.Equal(t, 10, batch.PortionedCount)
	assert.Equal(t, 10, batch.RemainingPortions)
	require.NotNil(t, batch.Product)
	assert.Equal(t, "Prawns", batch.Product.Name)

	fetched, err := f.purchases.Get(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(f.now.AddDate(0, 0, 30)).String(), fetched.BestBeforeDate.String())
	assert.True(t, fetched.QuantityReceived.Equal(decimal.NewFromInt(250)))
}

func TestPurchaseCreateErrors(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Prawns", models.ReceivedStateFrozen, "25", 2)
	unportioned := f.createProduct(t, "Herbs", models.ReceivedStateCold, "0", 0)

	base := func(productID uuid.UUID) *CreatePurchaseRequest {
		return &CreatePurchaseRequest{
			ProductID:        productID,
			PurchaseDate:     models.NewDate(f.now),
			BestBeforeDate:   models.NewDate(f.now.AddDate(0, 0, 5)),
			QuantityReceived: decimal.NewFromInt(100),
			QuantityUnit:     "g",
		}
	}

	_, err := f.purchases.Create(base(uuid.New()))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.purchases.Create(base(unportioned.ID))
	assert.ErrorIs(t, err, ErrInvalidState)

	req := base(product.ID)
	req.BestBeforeDate = models.Date{}
	_, err = f.purchases.Create(req)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	req = base(product.ID)
	req.QuantityReceived = decimal.Zero
	_, err = f.purchases.Create(req)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	batches, err := f.purchases.List()
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestPurchaseUpdate(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Prawns", models.ReceivedStateFrozen, "25", 2)
	batch := f.createPurchase(t, product.ID, "250", f.now.AddDate(0, 0, 30))

	update := func(quantity string, remaining *int) (*models.PurchaseBatch, error) {
		return f.purchases.Update(batch.ID, &UpdatePurchaseRequest{
			PurchaseDate:      batch.PurchaseDate,
			BestBeforeDate:    batch.BestBeforeDate,
			QuantityReceived:  decimal.RequireFromString(quantity),
			QuantityUnit:      "g",
			RemainingPortions: remaining,
		})
	}

	four := 4
	updated, err := update("300", &four)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.PortionedCount)
	assert.Equal(t, 4, updated.RemainingPortions)

	zero := 0
	updated, err = update("300", &zero)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.RemainingPortions)

	tooMany := 13
	_, err = update("300", &tooMany)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// without an override the batch is restored to full
	updated, err = update("200", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.PortionedCount)
	assert.Equal(t, 8, updated.RemainingPortions)

	_, err = f.purchases.Update(uuid.New(), &UpdatePurchaseRequest{
		PurchaseDate:     batch.PurchaseDate,
		BestBeforeDate:   batch.BestBeforeDate,
		QuantityReceived: decimal.NewFromInt(1),
		QuantityUnit:     "g",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchaseListAndCounts(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "Prawns", models.ReceivedStateFrozen, "25", 2)

	older := f.createPurchase(t, product.ID, "250", f.now.AddDate(0, 0, 30))
	f.advance(48 * time.Hour)
	newer := f.createPurchase(t, product.ID, "10", f.now.AddDate(0, 0, 30))

	batches, err := f.purchases.List()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, newer.ID, batches[0].ID)
	assert.Equal(t, older.ID, batches[1].ID)

	// 10g of 25g portions yields an empty batch
	inStock, err := f.purchases.CountInStock()
	require.NoError(t, err)
	assert.Equal(t, int64(1), inStock)

	recent, err := f.purchases.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, newer.ID, recent[0].ID)
}
