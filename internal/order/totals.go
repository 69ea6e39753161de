package order

import (
	"fmt"
	"strings"

	"sutra-be/internal/cart"

	"github.com/shopspring/decimal"
)

// ComputeTotals returns subtotal and total rounded to 2 places. The total is
// the sum of the rounded parts, so total == subtotal + shipping holds on
// the stored values.
func ComputeTotals(items []cart.LineItem, shipping float64) (subtotal, total float64) {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	subtotal, _ = sub.Round(2).Float64()
	return subtotal, AddAmounts(subtotal, shipping)
}

// AddAmounts sums two money amounts after rounding each to 2 places.
func AddAmounts(a, b float64) float64 {
	sum, _ := decimal.NewFromFloat(a).Round(2).
		Add(decimal.NewFromFloat(b).Round(2)).
		Float64()
	return sum
}

// ItemSummary renders "Name (xN), Name (xM)".
func ItemSummary(items []cart.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", it.Name, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func RoundAmount(a float64) float64 {
	r, _ := decimal.NewFromFloat(a).Round(2).Float64()
	return r
}
