package cart

// LineItem is one cart row. Price is the unit price snapshot taken when the
// item was added or last refreshed.
type LineItem struct {
	ProductID     string   `json:"id"`
	VariantSKU    string   `json:"variantSku,omitempty"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	ImageURL      string   `json:"imageUrl"`
	Weight        string   `json:"weight"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
}

// Key is the identity of the line item inside a cart.
func (i LineItem) Key() string {
	return IdentityKey(i.ProductID, i.VariantSKU, i.Weight)
}

func (i LineItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Summary is the cart as returned to callers.
type Summary struct {
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// IdentityKey is the variant SKU when present, else productID-weight.
// Add, remove and update all match line items through this function.
func IdentityKey(productID, variantSKU, weight string) string {
	if variantSKU != "" {
		return variantSKU
	}
	return productID + "-" + weight
}
