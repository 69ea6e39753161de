package address

import (
	"strings"

	"sutra-be/internal/utils"

	"github.com/google/uuid"
)

// Validate runs the field rules of a shipping address.
func Validate(a ShippingAddress) error {
	return utils.ValidateStruct(a)
}

// Add returns book with a copy of a appended under a fresh id. Saved
// addresses need a label unique within the book.
func Add(book []ShippingAddress, a ShippingAddress) ([]ShippingAddress, ShippingAddress, error) {
	a.Label = strings.TrimSpace(a.Label)
	if a.Label == "" {
		return book, ShippingAddress{}, ErrLabelRequired
	}
	if err := Validate(a); err != nil {
		return book, ShippingAddress{}, err
	}
	for _, existing := range book {
		if equalFold(existing.Label, a.Label) {
			return book, ShippingAddress{}, ErrDuplicateLabel
		}
	}

	a.ID = uuid.NewString()
	out := make([]ShippingAddress, 0, len(book)+1)
	out = append(out, book...)
	out = append(out, a)
	return out, a, nil
}

// Update replaces the fields of the address with id. The id itself never
// changes.
func Update(book []ShippingAddress, id string, a ShippingAddress) ([]ShippingAddress, ShippingAddress, error) {
	idx := indexOf(book, id)
	if idx < 0 {
		return book, ShippingAddress{}, ErrAddressNotFound
	}

	a.ID = id
	a.Label = strings.TrimSpace(a.Label)
	if a.Label == "" {
		a.Label = book[idx].Label
	}
	if err := Validate(a); err != nil {
		return book, ShippingAddress{}, err
	}
	for i, existing := range book {
		if i != idx && equalFold(existing.Label, a.Label) {
			return book, ShippingAddress{}, ErrDuplicateLabel
		}
	}

	out := make([]ShippingAddress, len(book))
	copy(out, book)
	out[idx] = a
	return out, a, nil
}

func Remove(book []ShippingAddress, id string) ([]ShippingAddress, error) {
	idx := indexOf(book, id)
	if idx < 0 {
		return book, ErrAddressNotFound
	}
	out := make([]ShippingAddress, 0, len(book)-1)
	out = append(out, book[:idx]...)
	out = append(out, book[idx+1:]...)
	return out, nil
}

func Find(book []ShippingAddress, id string) (ShippingAddress, bool) {
	idx := indexOf(book, id)
	if idx < 0 {
		return ShippingAddress{}, false
	}
	return book[idx], true
}

func indexOf(book []ShippingAddress, id string) int {
	if id == "" {
		return -1
	}
	for i, a := range book {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
