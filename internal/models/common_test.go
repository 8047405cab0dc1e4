// internal/models/common_test.go
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d.Time)

	// full timestamps keep only their calendar date
	d, err = ParseDate("2025-03-10T18:45:00+08:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", d.String())

	_, err = ParseDate("10/03/2025")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		BestBefore Date `json:"best_before_date"`
		Purchased  Date `json:"purchase_date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"best_before_date":"2025-03-12","purchase_date":null}`), &payload))
	assert.Equal(t, "2025-03-12", payload.BestBefore.String())
	assert.True(t, payload.Purchased.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"best_before_date":"2025-03-12","purchase_date":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"best_before_date":"tomorrow"}`), &payload))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-10", d.String())

	require.NoError(t, d.Scan("2025-04-01 00:00:00+00:00"))
	assert.Equal(t, "2025-04-01", d.String())

	require.NoError(t, d.Scan([]byte("2025-04-02")))
	assert.Equal(t, "2025-04-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestBatchRef(t *testing.T) {
	assert.True(t, BatchRef{}.IsZero())
	ref := PurchaseRef([16]byte{1})
	assert.False(t, ref.IsZero())
	assert.Equal(t, BatchTypePurchase, ref.Type)
}
