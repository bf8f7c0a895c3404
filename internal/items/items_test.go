package items

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemJSONPriceIsNumber(t *testing.T) {
	it := Item{
		ID:        1,
		Name:      "Cake",
		Price:     NewPrice(decimal.RequireFromString("5.99")),
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Cake","price":5.99,"created_at":"2024-05-01T12:00:00Z"}`, string(b))
	assert.Contains(t, string(b), `"price":5.99`)

	// the package default for decimal.Decimal stays quoted
	raw, err := json.Marshal(decimal.RequireFromString("5.99"))
	require.NoError(t, err)
	assert.Equal(t, `"5.99"`, string(raw))
}

func TestPriceUnmarshal(t *testing.T) {
	var it Item
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"name":"Pie","price":3.50}`), &it))
	assert.True(t, decimal.RequireFromString("3.5").Equal(it.Price.Decimal))

	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.25"}`), &it))
	assert.Equal(t, "12.25", it.Price.StringFixed(2))

	assert.Error(t, json.Unmarshal([]byte(`{"price":"abc"}`), &it))
}
