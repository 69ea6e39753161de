package checkout

import "errors"

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrAddressRequired = errors.New("shipping address or saved address id is required")
	ErrLabelRequired   = errors.New("a label is required to save the address")
	ErrSignInToSave    = errors.New("sign in to save addresses")
)
