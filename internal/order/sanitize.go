package order

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"sutra-be/internal/address"
	"sutra-be/internal/cart"
	"sutra-be/internal/storage"
)

const (
	defaultText     = "N/A"
	defaultItemName = "Unknown Item"
)

// FieldIssue records one default applied while decoding a stored order.
// Index is the record's position in the stored array, -1 for the array
// itself.
type FieldIssue struct {
	Index   int    `json:"index"`
	OrderID string `json:"orderId,omitempty"`
	Field   string `json:"field"`
	Default string `json:"default"`
}

func (i FieldIssue) String() string {
	return fmt.Sprintf("order[%d] %s: %s -> %s", i.Index, i.OrderID, i.Field, i.Default)
}

// DecodeOrders decodes the stored order collection field by field. Every
// field that is missing or has the wrong type gets a default and a
// FieldIssue; records without an id are dropped. A value that is not an
// array decodes to no orders.
func DecodeOrders(raw []byte, now time.Time) ([]Order, []FieldIssue) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return []Order{}, []FieldIssue{{Index: -1, Field: "orders", Default: "[]"}}
	}

	orders := make([]Order, 0, len(records))
	var issues []FieldIssue
	for i, rec := range records {
		var m map[string]any
		if err := json.Unmarshal(rec, &m); err != nil || m == nil {
			issues = append(issues, FieldIssue{Index: i, Field: "record", Default: "dropped"})
			continue
		}
		d := &recordDecoder{index: i, issues: &issues}
		if o, ok := d.order(m, now); ok {
			orders = append(orders, o)
		}
	}
	return orders, issues
}

type recordDecoder struct {
	index  int
	id     string
	issues *[]FieldIssue
}

func (d *recordDecoder) note(field, def string) {
	*d.issues = append(*d.issues, FieldIssue{Index: d.index, OrderID: d.id, Field: field, Default: def})
}

func (d *recordDecoder) order(m map[string]any, now time.Time) (Order, bool) {
	id, _ := m["id"].(string)
	if strings.TrimSpace(id) == "" {
		d.note("id", "dropped")
		return Order{}, false
	}
	d.id = id

	o := Order{
		ID:     id,
		UserID: optString(m, "userId"),
	}

	o.CustomerInfo = d.customer(m["customerInfo"])
	o.Items = d.items(m["items"])

	o.CreatedAt = d.timestamp(m, "createdAt", "createdAt", now)
	o.UpdatedAt = d.timestamp(m, "updatedAt", "updatedAt", o.CreatedAt)

	o.Status = d.status(m["status"], "status")
	o.PaymentStatus = d.paymentStatus(m["paymentStatus"])
	o.StatusHistory = d.history(m["statusHistory"], o.CreatedAt)
	o.FeedbackSubmitted, _ = m["feedbackSubmitted"].(bool)

	subtotal, _ := ComputeTotals(o.Items, 0)
	o.ShippingCost = d.number(m, "shippingCost", "shippingCost", 0)
	o.Subtotal = d.number(m, "subtotal", "subtotal", subtotal)
	o.TotalAmount = d.number(m, "totalAmount", "totalAmount", AddAmounts(o.Subtotal, o.ShippingCost))

	if s, ok := m["itemSummary"].(string); ok && s != "" {
		o.ItemSummary = s
	} else {
		o.ItemSummary = ItemSummary(o.Items)
	}

	return o, true
}

func (d *recordDecoder) customer(v any) address.ShippingAddress {
	m, ok := v.(map[string]any)
	if !ok {
		d.note("customerInfo", defaultText)
		m = map[string]any{}
	}
	field := func(key string) string {
		return d.text(m, key, "customerInfo."+key, defaultText)
	}
	return address.ShippingAddress{
		ID:           optString(m, "id"),
		Label:        optString(m, "label"),
		FullName:     field("fullName"),
		Email:        field("email"),
		Phone:        field("phone"),
		AddressLine1: field("addressLine1"),
		AddressLine2: optString(m, "addressLine2"),
		City:         field("city"),
		State:        field("state"),
		PostalCode:   field("postalCode"),
		Country:      field("country"),
	}
}

func (d *recordDecoder) items(v any) []cart.LineItem {
	list, ok := v.([]any)
	if !ok {
		d.note("items", "[]")
		return []cart.LineItem{}
	}

	items := make([]cart.LineItem, 0, len(list))
	for i, raw := range list {
		prefix := fmt.Sprintf("items[%d].", i)
		m, ok := raw.(map[string]any)
		if !ok {
			d.note(prefix[:len(prefix)-1], "dropped")
			continue
		}
		it := cart.LineItem{
			ProductID:  d.text(m, "id", prefix+"id", defaultText),
			VariantSKU: optString(m, "variantSku"),
			Name:       d.text(m, "name", prefix+"name", defaultItemName),
			Price:      d.number(m, "price", prefix+"price", 0),
			Quantity:   d.quantity(m, prefix+"quantity"),
			ImageURL:   optString(m, "imageUrl"),
			Weight:     d.text(m, "weight", prefix+"weight", defaultText),
		}
		if op, ok := toFloat(m["originalPrice"]); ok && op >= 0 {
			it.OriginalPrice = &op
		}
		items = append(items, it)
	}
	return items
}

func (d *recordDecoder) history(v any, createdAt time.Time) []StatusHistoryEntry {
	list, ok := v.([]any)
	if !ok {
		if v != nil {
			d.note("statusHistory", "[]")
		}
		return []StatusHistoryEntry{}
	}

	h := make([]StatusHistoryEntry, 0, len(list))
	for i, raw := range list {
		prefix := fmt.Sprintf("statusHistory[%d].", i)
		m, ok := raw.(map[string]any)
		if !ok {
			d.note(prefix[:len(prefix)-1], "dropped")
			continue
		}
		h = append(h, StatusHistoryEntry{
			Status:    d.status(m["status"], prefix+"status"),
			Timestamp: d.timestamp(m, "timestamp", prefix+"timestamp", createdAt),
			Notes:     optString(m, "notes"),
		})
	}
	SortHistory(h)
	return h
}

func (d *recordDecoder) text(m map[string]any, key, field, def string) string {
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		d.note(field, def)
		return def
	}
	return s
}

func (d *recordDecoder) number(m map[string]any, key, field string, def float64) float64 {
	f, ok := toFloat(m[key])
	if !ok || f < 0 {
		d.note(field, strconv.FormatFloat(def, 'f', 2, 64))
		return def
	}
	return f
}

func (d *recordDecoder) quantity(m map[string]any, field string) int {
	f, ok := toFloat(m["quantity"])
	if !ok || f < 1 {
		d.note(field, "1")
		return 1
	}
	return int(f)
}

func (d *recordDecoder) timestamp(m map[string]any, key, field string, fallback time.Time) time.Time {
	t, ok := storage.TryParseTime(m[key])
	if !ok {
		d.note(field, fallback.UTC().Format(time.RFC3339))
		return fallback
	}
	return t
}

func (d *recordDecoder) status(v any, field string) Status {
	s, _ := v.(string)
	if st := Status(s); st.Valid() {
		return st
	}
	d.note(field, string(StatusPending))
	return StatusPending
}

func (d *recordDecoder) paymentStatus(v any) PaymentStatus {
	s, _ := v.(string)
	if ps := PaymentStatus(s); ps.Valid() {
		return ps
	}
	d.note("paymentStatus", string(PaymentPending))
	return PaymentPending
}

func optString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
