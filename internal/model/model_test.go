package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Money(59700)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":597}`, string(b))

	var in struct {
		Price Money `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":199.99}`), &in))
	assert.Equal(t, Money(19999), in.Price)
	assert.Equal(t, Money(59700), Money(19900).Mul(3))
}

func TestDateJSONAndScan(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-04"`), &d))
	assert.Equal(t, "2025-01-04", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2025-01-04T15:00:00Z"`), &d))
	assert.Equal(t, "2025-01-04", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"04/01/2025"`), &d))

	require.NoError(t, d.Scan(time.Date(2025, 1, 1, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-01", d.String())
	require.NoError(t, d.Scan([]byte("2025-02-03")))
	assert.Equal(t, "2025-02-03", d.String())
}

func TestLowStockAtThreshold(t *testing.T) {
	assert.True(t, InventoryItem{Quantity: 5, MinQuantity: 5}.LowStock())
	assert.False(t, InventoryItem{Quantity: 6, MinQuantity: 5}.LowStock())
}
