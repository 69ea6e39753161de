package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrFailedLoadOrders     = errors.New("failed to load orders")
	ErrFailedSaveOrders     = errors.New("failed to save orders")
)
