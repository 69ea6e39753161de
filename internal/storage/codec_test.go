package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (brokenStore) Set(context.Context, string, []byte) error {
	return errors.New("backend down")
}

func (brokenStore) Delete(context.Context, string) error {
	return nil
}

type record struct {
	ID    string    `json:"id"`
	Qty   int       `json:"qty"`
	Price float64   `json:"price"`
	At    time.Time `json:"at"`
	Tags  []string  `json:"tags"`
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing key returns default", func(t *testing.T) {
		s := NewMemoryStore()
		got, err := Load(ctx, s, KeyCart, []record{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Not an array returns default", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyCart, []byte(`"not an array"`)))

		def := []record{{ID: "default"}}
		got, err := Load(ctx, s, KeyCart, def)
		require.NoError(t, err)
		assert.Equal(t, def, got)
	})

	t.Run("Unparseable JSON returns default", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyCart, []byte(`[{"id":`)))
		got, err := Load(ctx, s, KeyCart, []record{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Null returns default", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyWishlist, []byte(`null`)))
		got, err := Load(ctx, s, KeyWishlist, []string{})
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("Backend error is returned", func(t *testing.T) {
		got, err := Load(ctx, &brokenStore{}, KeyWishlist, []string{"x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "backend down")
		assert.Equal(t, []string{"x"}, got)
	})
}

func TestLoadRaw(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		raw, ok, err := LoadRaw(ctx, NewMemoryStore(), KeyOrders)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, raw)
	})

	t.Run("Present value is trimmed", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Set(ctx, KeyOrders, []byte("  [1]\n")))

		raw, ok, err := LoadRaw(ctx, s, KeyOrders)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[1]", string(raw))
	})

	t.Run("Backend error", func(t *testing.T) {
		_, ok, err := LoadRaw(ctx, &brokenStore{}, KeyOrders)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	in := []record{
		{ID: "1", Qty: 3, Price: 12.99, At: at, Tags: []string{"spicy"}},
		{ID: "2", Qty: 1, Price: 0.1, At: at.Add(time.Hour), Tags: []string{}},
	}
	require.NoError(t, Save(ctx, s, "records", in))

	out, err := Load(ctx, s, "records", []record{})
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSave_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Encode failure", func(t *testing.T) {
		err := Save(ctx, NewMemoryStore(), "bad", map[string]any{"ch": make(chan int)})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "encode bad")
	})

	t.Run("Write failure", func(t *testing.T) {
		err := Save(ctx, &brokenStore{}, "k", []int{1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "write k")
	})
}
