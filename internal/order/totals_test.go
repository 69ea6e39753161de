package order

import (
	"testing"

	"sutra-be/internal/cart"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []cart.LineItem
		shipping     float64
		wantSubtotal float64
		wantTotal    float64
	}{
		{
			name: "rounded sum with shipping",
			items: []cart.LineItem{
				{Price: 12.99, Quantity: 2},
				{Price: 16.51, Quantity: 1},
			},
			shipping:     3.50,
			wantSubtotal: 42.49,
			wantTotal:    45.99,
		},
		{
			name:         "free shipping",
			items:        []cart.LineItem{{Price: 5.99, Quantity: 3}},
			wantSubtotal: 17.97,
			wantTotal:    17.97,
		},
		{
			name:      "no items",
			shipping:  3.5,
			wantTotal: 3.5,
		},
		{
			name:         "float noise is rounded away",
			items:        []cart.LineItem{{Price: 0.1, Quantity: 3}},
			wantSubtotal: 0.3,
			wantTotal:    0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, total := ComputeTotals(tt.items, tt.shipping)
			assert.Equal(t, tt.wantSubtotal, sub)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestAddAmounts(t *testing.T) {
	assert.Equal(t, 45.99, AddAmounts(42.49, 3.50))
	assert.Equal(t, 0.3, AddAmounts(0.1, 0.2))
	assert.Equal(t, 3.51, RoundAmount(3.505))
}

func TestItemSummary(t *testing.T) {
	items := []cart.LineItem{
		{Name: "Andhra Chilli Paste", Quantity: 2},
		{Name: "Tomato Pickle", Quantity: 1},
	}
	assert.Equal(t, "Andhra Chilli Paste (x2), Tomato Pickle (x1)", ItemSummary(items))
	assert.Equal(t, "", ItemSummary(nil))
}
