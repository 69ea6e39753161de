// Package pricing resolves the selected variant of a product and renders
// display prices. Every function here is best-effort and never fails.
package pricing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"sutra-be/internal/product"

	"github.com/shopspring/decimal"
)

const (
	CurrencySymbol = "₹"
	NotAvailable   = "N/A"
)

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// ResolveVariant returns the variant matching selection, tried as a SKU
// first and as a weight label second. An empty selection yields the default
// variant, falling back to the first one when the default index is out of
// range. ok is false when nothing matches.
func ResolveVariant(p product.Product, selection string) (product.Variant, bool) {
	if len(p.Variants) == 0 {
		return product.Variant{}, false
	}

	if selection == "" {
		i := p.DefaultVariantIndex
		if i < 0 || i >= len(p.Variants) {
			i = 0
		}
		return p.Variants[i], true
	}

	for _, v := range p.Variants {
		if v.SKU != "" && v.SKU == selection {
			return v, true
		}
	}
	for _, v := range p.Variants {
		if v.Weight == selection {
			return v, true
		}
	}
	return product.Variant{}, false
}

// WeightMagnitude parses the leading integer of a weight label ("250g" -> 250).
func WeightMagnitude(weight string) (int64, bool) {
	m := leadingInt.FindStringSubmatch(weight)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PricePerUnit renders "(₹X.XX / 100g)" for a price and weight label, or ""
// when the weight has no usable leading magnitude.
func PricePerUnit(price float64, weight string, referenceSize int, unitLabel string) string {
	magnitude, ok := WeightMagnitude(weight)
	if !ok || magnitude == 0 || referenceSize <= 0 || !finite(price) {
		return ""
	}

	perUnit := decimal.NewFromFloat(price).
		Div(decimal.NewFromInt(magnitude)).
		Mul(decimal.NewFromInt(int64(referenceSize)))

	return fmt.Sprintf("(%s%s / %d%s)", CurrencySymbol, perUnit.StringFixed(2), referenceSize, unitLabel)
}

// FormatAmount renders an amount as "₹X.XX", or "N/A" when it is not a
// usable number.
func FormatAmount(amount float64) string {
	if !finite(amount) || amount < 0 {
		return NotAvailable
	}
	return CurrencySymbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// DisplayPrice renders the unit price of v, "N/A" when v is absent.
func DisplayPrice(v *product.Variant) string {
	if v == nil {
		return NotAvailable
	}
	return FormatAmount(v.Price)
}

// Decorate fills in the price-per-unit string of every variant that lacks one.
func Decorate(p product.Product, referenceSize int, unitLabel string) product.Product {
	variants := make([]product.Variant, len(p.Variants))
	for i, v := range p.Variants {
		if v.PricePerUnit == "" {
			v.PricePerUnit = PricePerUnit(v.Price, v.Weight, referenceSize, unitLabel)
		}
		variants[i] = v
	}
	p.Variants = variants
	return p
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
