package address

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrLabelRequired   = errors.New("address label is required")
	ErrDuplicateLabel  = errors.New("address label already in use")
)
