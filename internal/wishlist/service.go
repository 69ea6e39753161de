// Package wishlist keeps an ordered set of product ids per session.
package wishlist

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"sutra-be/internal/logger"
	"sutra-be/internal/product"
	"sutra-be/internal/storage"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, sessionID string) ([]string, error)
	Products(ctx context.Context, sessionID string) ([]product.Product, error)
	Add(ctx context.Context, sessionID, productID string) ([]string, error)
	Remove(ctx context.Context, sessionID, productID string) ([]string, error)
	Contains(ctx context.Context, sessionID, productID string) (bool, error)
}

type service struct {
	store   storage.Store
	catalog product.Catalog
	locks   *storage.KeyedMutex
}

func NewService(store storage.Store, catalog product.Catalog) Service {
	return &service{store: store, catalog: catalog, locks: storage.NewKeyedMutex()}
}

func key(sessionID string) string {
	return storage.SessionKey(sessionID, storage.KeyWishlist)
}

func (s *service) List(ctx context.Context, sessionID string) ([]string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	ids, err := storage.Load(ctx, s.store, key(sessionID), []string{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadWishlist, err)
	}
	return ids, nil
}

// Products resolves the wishlist against the catalog, skipping ids that
// are no longer sold.
func (s *service) Products(ctx context.Context, sessionID string) ([]product.Product, error) {
	ids, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.GetProductByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// Add appends productID unless it is already listed. Unknown products are
// rejected with product.ErrProductNotFound.
func (s *service) Add(ctx context.Context, sessionID, productID string) ([]string, error) {
	if _, err := s.catalog.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, "Add", func(ids []string) []string {
		if slices.Contains(ids, productID) {
			return ids
		}
		return append(ids, productID)
	})
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) ([]string, error) {
	return s.mutate(ctx, sessionID, "Remove", func(ids []string) []string {
		return slices.DeleteFunc(ids, func(id string) bool { return id == productID })
	})
}

func (s *service) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	ids, err := s.List(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, productID), nil
}

func (s *service) mutate(ctx context.Context, sessionID, method string, fn func([]string) []string) ([]string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "wishlist."+method),
	)

	ids, err := storage.Load(ctx, s.store, key(sessionID), []string{})
	if err != nil {
		log.Error("failed to load wishlist, mutation aborted", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadWishlist, err)
	}
	ids = fn(ids)
	if err := storage.Save(ctx, s.store, key(sessionID), ids); err != nil {
		log.Error("failed to save wishlist", zap.Error(err))
		return nil, err
	}
	return ids, nil
}
