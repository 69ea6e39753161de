package cart

import (
	"context"
	"fmt"

	"sutra-be/internal/storage"
)

type Repository interface {
	Load(ctx context.Context, sessionID string) ([]LineItem, error)
	Save(ctx context.Context, sessionID string, items []LineItem) error
}

type repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

// Load reads missing or malformed carts back as empty. Only a failing store
// is an error.
func (r *repository) Load(ctx context.Context, sessionID string) ([]LineItem, error) {
	items, err := storage.Load(ctx, r.store, storage.SessionKey(sessionID, storage.KeyCart), []LineItem{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	return items, nil
}

func (r *repository) Save(ctx context.Context, sessionID string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	if err := storage.Save(ctx, r.store, storage.SessionKey(sessionID, storage.KeyCart), items); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}
