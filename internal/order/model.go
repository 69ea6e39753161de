package order

import (
	"strings"
	"time"

	"sutra-be/internal/address"
	"sutra-be/internal/cart"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

var statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

type StatusHistoryEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type Order struct {
	ID                string                  `json:"id"`
	UserID            string                  `json:"userId,omitempty"`
	CustomerInfo      address.ShippingAddress `json:"customerInfo"`
	Items             []cart.LineItem         `json:"items"`
	ItemSummary       string                  `json:"itemSummary"`
	Subtotal          float64                 `json:"subtotal"`
	ShippingCost      float64                 `json:"shippingCost"`
	TotalAmount       float64                 `json:"totalAmount"`
	Status            Status                  `json:"status"`
	PaymentStatus     PaymentStatus           `json:"paymentStatus"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
	StatusHistory     []StatusHistoryEntry    `json:"statusHistory"`
	FeedbackSubmitted bool                    `json:"feedbackSubmitted,omitempty"`
}

// CanView reports whether userID may read o. Guest orders are only visible
// to admins.
func (o Order) CanView(userID string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return userID != "" && o.UserID == userID
}

// matchesSearch expects term already lower-cased.
func (o Order) matchesSearch(term string) bool {
	return strings.Contains(strings.ToLower(o.ID), term) ||
		strings.Contains(strings.ToLower(o.CustomerInfo.FullName), term) ||
		strings.Contains(strings.ToLower(o.CustomerInfo.Email), term)
}

func (o Order) hasItemNamed(name string) bool {
	for _, it := range o.Items {
		if it.Name == name {
			return true
		}
	}
	return false
}

type CreateOrderInput struct {
	UserID       string
	CustomerInfo address.ShippingAddress
	Items        []cart.LineItem
	ShippingCost float64
}

// ListOptions filters and pages the admin order listing. Zero values
// disable a filter; Page and Limit default to 1 and 10.
type ListOptions struct {
	Status Status
	// Search matches order id, customer name or email, case-insensitively.
	Search string
	// Product keeps orders with at least one item of exactly this name.
	Product string
	Page    int
	Limit   int
}

type ListResult struct {
	Items      []Order `json:"items"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}
