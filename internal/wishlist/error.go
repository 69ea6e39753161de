package wishlist

import "errors"

var (
	ErrSessionRequired    = errors.New("session id is required")
	ErrFailedLoadWishlist = errors.New("failed to load wishlist")
)
