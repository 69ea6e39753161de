package checkout

import "sutra-be/internal/address"

// Input places an order either to a saved address (AddressID) or to a new
// one, which can optionally be saved to the signed-in user's book.
type Input struct {
	AddressID       string                   `json:"addressId,omitempty"`
	ShippingAddress *address.ShippingAddress `json:"shippingAddress,omitempty"`
	SaveAddress     bool                     `json:"saveAddress,omitempty"`
	AddressLabel    string                   `json:"newAddressLabel,omitempty"`
}
