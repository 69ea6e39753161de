package address

import (
	"testing"

	"sutra-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func home() ShippingAddress {
	return ShippingAddress{
		Label:        "Home",
		FullName:     "Lakshmi Rao",
		Email:        "lakshmi@example.com",
		Phone:        "9876543210",
		AddressLine1: "12 Temple Street",
		City:         "Guntur",
		State:        "Andhra Pradesh",
		PostalCode:   "522001",
		Country:      "India",
	}
}

func TestAdd(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		book, saved, err := Add(nil, home())

		require.NoError(t, err)
		require.Len(t, book, 1)
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, saved, book[0])
	})

	t.Run("IdsAreUnique", func(t *testing.T) {
		book, a, err := Add(nil, home())
		require.NoError(t, err)

		office := home()
		office.Label = "Office"
		book, b, err := Add(book, office)
		require.NoError(t, err)

		assert.Len(t, book, 2)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("LabelRequired", func(t *testing.T) {
		a := home()
		a.Label = "  "
		_, _, err := Add(nil, a)
		assert.ErrorIs(t, err, ErrLabelRequired)
	})

	t.Run("DuplicateLabel", func(t *testing.T) {
		book, _, err := Add(nil, home())
		require.NoError(t, err)

		again := home()
		again.Label = "home"
		_, _, err = Add(book, again)
		assert.ErrorIs(t, err, ErrDuplicateLabel)
	})

	t.Run("InvalidFields", func(t *testing.T) {
		a := home()
		a.Email = "not-an-email"
		a.City = ""

		_, _, err := Add(nil, a)

		var verr *utils.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "city")
	})
}

func TestUpdate(t *testing.T) {
	book, saved, err := Add(nil, home())
	require.NoError(t, err)

	t.Run("KeepsID", func(t *testing.T) {
		changed := home()
		changed.ID = "attempted-rewrite"
		changed.City = "Vijayawada"
		changed.Label = ""

		out, updated, err := Update(book, saved.ID, changed)

		require.NoError(t, err)
		assert.Equal(t, saved.ID, updated.ID)
		assert.Equal(t, "Home", updated.Label)
		assert.Equal(t, "Vijayawada", out[0].City)
		assert.Equal(t, "Guntur", book[0].City)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, _, err := Update(book, "missing", home())
		assert.ErrorIs(t, err, ErrAddressNotFound)
	})
}

func TestRemoveAndFind(t *testing.T) {
	book, saved, err := Add(nil, home())
	require.NoError(t, err)

	got, ok := Find(book, saved.ID)
	assert.True(t, ok)
	assert.Equal(t, saved, got)

	out, err := Remove(book, saved.ID)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = Remove(out, saved.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)

	_, ok = Find(out, "")
	assert.False(t, ok)
}

func TestSameDestination(t *testing.T) {
	a := home()
	b := home()
	b.ID = "x"
	b.Label = "Other"
	b.City = "GUNTUR "

	assert.True(t, a.SameDestination(b))

	b.PostalCode = "522002"
	assert.False(t, a.SameDestination(b))
}
