package address

// ShippingAddress is both a saved address-book entry and the customer
// info captured on an order. ID and Label are set once the address is
// saved to a user's book.
type ShippingAddress struct {
	ID           string `json:"id,omitempty"`
	Label        string `json:"label,omitempty" validate:"omitempty,max=40"`
	FullName     string `json:"fullName" validate:"required,max=120"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=7,max=20"`
	AddressLine1 string `json:"addressLine1" validate:"required,max=200"`
	AddressLine2 string `json:"addressLine2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"required,max=80"`
	State        string `json:"state" validate:"required,max=80"`
	PostalCode   string `json:"postalCode" validate:"required,max=12"`
	Country      string `json:"country" validate:"required,max=80"`
}

// SameDestination reports whether a and b ship to the same place,
// ignoring id, label and case.
func (a ShippingAddress) SameDestination(b ShippingAddress) bool {
	return equalFold(a.FullName, b.FullName) &&
		equalFold(a.AddressLine1, b.AddressLine1) &&
		equalFold(a.AddressLine2, b.AddressLine2) &&
		equalFold(a.City, b.City) &&
		equalFold(a.State, b.State) &&
		equalFold(a.PostalCode, b.PostalCode) &&
		equalFold(a.Country, b.Country)
}
