package product

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product id or slug")
	ErrDuplicateSKU     = errors.New("duplicate variant sku within product")
	ErrNegativePrice    = errors.New("variant price must not be negative")
	ErrMissingProductID = errors.New("product id is required")
)
