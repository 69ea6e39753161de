package cart

import (
	"sutra-be/internal/product"
)

// Cart is the in-memory aggregation of line items for one session.
// It holds no reference to storage; Service loads, mutates and persists it.
type Cart struct {
	items []LineItem
}

// New builds a cart from stored items, dropping rows with a non-positive
// quantity and merging rows that share an identity key.
func New(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, 0, len(items))}
	index := make(map[string]int, len(items))

	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i, ok := index[it.Key()]; ok {
			c.items[i].Quantity += it.Quantity
			continue
		}
		index[it.Key()] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Add puts quantity units of variant v of p into the cart. An existing row
// with the same identity key has its quantity increased and its price
// refreshed to the variant's current price. A non-positive quantity, a nil
// variant or a variant that does not belong to p is a no-op; the return
// value reports whether the cart changed.
func (c *Cart) Add(p product.Product, quantity int, v *product.Variant) bool {
	if quantity <= 0 || v == nil || !p.HasVariant(*v) {
		return false
	}

	key := IdentityKey(p.ID, v.SKU, v.Weight)
	price := v.Price

	for i := range c.items {
		if c.items[i].Key() != key {
			continue
		}
		c.items[i].Quantity += quantity
		c.items[i].Price = price
		c.items[i].OriginalPrice = &price
		return true
	}

	c.items = append(c.items, LineItem{
		ProductID:     p.ID,
		VariantSKU:    v.SKU,
		Name:          p.Name,
		Price:         price,
		Quantity:      quantity,
		ImageURL:      p.ImageURL(),
		Weight:        v.Weight,
		OriginalPrice: &price,
	})
	return true
}

// matches reports whether it is addressed by (productID, variantSKU). With
// no SKU the key is rebuilt from the item's own weight.
func matches(it LineItem, productID, variantSKU string) bool {
	return it.Key() == IdentityKey(productID, variantSKU, it.Weight)
}

// RemoveByID drops every row addressed by (productID, variantSKU).
func (c *Cart) RemoveByID(productID, variantSKU string) bool {
	kept := c.items[:0]
	removed := false
	for _, it := range c.items {
		if matches(it, productID, variantSKU) {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	return removed
}

// UpdateQuantity overwrites the quantity of the addressed rows, refreshing
// their price from the stored original price when there is one. A
// non-positive quantity removes the rows instead.
func (c *Cart) UpdateQuantity(productID string, quantity int, variantSKU string) bool {
	if quantity <= 0 {
		return c.RemoveByID(productID, variantSKU)
	}

	changed := false
	for i := range c.items {
		if !matches(c.items[i], productID, variantSKU) {
			continue
		}
		c.items[i].Quantity = quantity
		if c.items[i].OriginalPrice != nil {
			c.items[i].Price = *c.items[i].OriginalPrice
		}
		changed = true
	}
	return changed
}

func (c *Cart) Clear() {
	c.items = []LineItem{}
}

// Total is the unrounded sum of price x quantity.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, it := range c.items {
		total += it.LineTotal()
	}
	return total
}

// ItemCount is the sum of quantities, as shown on the cart badge.
func (c *Cart) ItemCount() int {
	count := 0
	for _, it := range c.items {
		count += it.Quantity
	}
	return count
}

func (c *Cart) Summary() *Summary {
	return &Summary{
		Items:     c.Items(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
