package user

import (
	"context"
	"errors"
	"fmt"

	"sutra-be/internal/address"
	"sutra-be/internal/storage"
)

// Repository stores the signed-in user blob of a session and the address
// book of each user id.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*AppUser, bool, error)
	Save(ctx context.Context, sessionID string, u *AppUser) error
	Delete(ctx context.Context, sessionID string) error
	LoadAddresses(ctx context.Context, uid string) ([]address.ShippingAddress, error)
	SaveAddresses(ctx context.Context, uid string, book []address.ShippingAddress) error
}

type repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Load(ctx context.Context, sessionID string) (*AppUser, bool, error) {
	u, err := storage.Load[*AppUser](ctx, r.store, storage.SessionKey(sessionID, storage.KeyUser), nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFailedLoadUser, err)
	}
	if u == nil || u.UID == "" {
		return nil, false, nil
	}
	if u.Addresses == nil {
		u.Addresses = []address.ShippingAddress{}
	}
	return u, true, nil
}

func (r *repository) Save(ctx context.Context, sessionID string, u *AppUser) error {
	return storage.Save(ctx, r.store, storage.SessionKey(sessionID, storage.KeyUser), u)
}

func (r *repository) Delete(ctx context.Context, sessionID string) error {
	err := r.store.Delete(ctx, storage.SessionKey(sessionID, storage.KeyUser))
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("delete session user: %w", err)
	}
	return nil
}

func (r *repository) LoadAddresses(ctx context.Context, uid string) ([]address.ShippingAddress, error) {
	book, err := storage.Load(ctx, r.store, storage.UserKey(uid, storage.KeyAddresses), []address.ShippingAddress{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadUser, err)
	}
	return book, nil
}

func (r *repository) SaveAddresses(ctx context.Context, uid string, book []address.ShippingAddress) error {
	if book == nil {
		book = []address.ShippingAddress{}
	}
	return storage.Save(ctx, r.store, storage.UserKey(uid, storage.KeyAddresses), book)
}
