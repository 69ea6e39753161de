package cart

import (
	"context"
	"strings"

	"sutra-be/internal/logger"
	"sutra-be/internal/metrics"
	"sutra-be/internal/pricing"
	"sutra-be/internal/product"
	"sutra-be/internal/storage"

	"go.uber.org/zap"
)

// Service is the session-scoped cart API. Every mutating call persists the
// full cart before returning.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Summary, error)
	Add(ctx context.Context, sessionID string, p product.Product, quantity int, v *product.Variant) (*Summary, error)
	AddBySelection(ctx context.Context, sessionID, productID, selection string, quantity int) (*Summary, error)
	RemoveByID(ctx context.Context, sessionID, productID, variantSKU string) (*Summary, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int, variantSKU string) (*Summary, error)
	Clear(ctx context.Context, sessionID string) error
	Total(ctx context.Context, sessionID string) (float64, error)
	ItemCount(ctx context.Context, sessionID string) (int, error)
}

type service struct {
	repo    Repository
	catalog product.Catalog
	locks   *storage.KeyedMutex
	metrics *metrics.Storefront
}

// NewService creates a new cart service
func NewService(repo Repository, catalog product.Catalog, m *metrics.Storefront) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		locks:   storage.NewKeyedMutex(),
		metrics: m,
	}
}

func (s *service) Get(ctx context.Context, sessionID string) (*Summary, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return New(items).Summary(), nil
}

func (s *service) Add(
	ctx context.Context,
	sessionID string,
	p product.Product,
	quantity int,
	v *product.Variant,
) (*Summary, error) {
	return s.mutate(ctx, sessionID, "add", func(c *Cart) bool {
		return c.Add(p, quantity, v)
	})
}

// AddBySelection resolves the variant through the pricing resolver before
// adding. An unknown product is an error; an unresolvable selection is a
// no-op.
func (s *service) AddBySelection(
	ctx context.Context,
	sessionID, productID, selection string,
	quantity int,
) (*Summary, error) {
	p, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	v, ok := pricing.ResolveVariant(*p, selection)
	if !ok {
		logger.FromCtx(ctx).Info("variant selection not resolved, add ignored",
			zap.String("layer", "service"),
			zap.String("method", "AddBySelection"),
			zap.String("product_id", productID),
			zap.String("selection", selection),
		)
		return s.Get(ctx, sessionID)
	}
	return s.Add(ctx, sessionID, *p, quantity, &v)
}

func (s *service) RemoveByID(ctx context.Context, sessionID, productID, variantSKU string) (*Summary, error) {
	return s.mutate(ctx, sessionID, "remove", func(c *Cart) bool {
		return c.RemoveByID(productID, variantSKU)
	})
}

func (s *service) UpdateQuantity(
	ctx context.Context,
	sessionID, productID string,
	quantity int,
	variantSKU string,
) (*Summary, error) {
	op := "update"
	if quantity <= 0 {
		op = "remove"
	}
	return s.mutate(ctx, sessionID, op, func(c *Cart) bool {
		return c.UpdateQuantity(productID, quantity, variantSKU)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, "clear", func(c *Cart) bool {
		c.Clear()
		return true
	})
	return err
}

func (s *service) Total(ctx context.Context, sessionID string) (float64, error) {
	sum, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return sum.Total, nil
}

func (s *service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	sum, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return sum.ItemCount, nil
}

// mutate runs one load-modify-save cycle under the session's cart lock.
// The cart is only written when fn reports a change.
func (s *service) mutate(ctx context.Context, sessionID, op string, fn func(*Cart) bool) (*Summary, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "cart."+op),
	)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		log.Error("failed to load cart, mutation aborted", zap.Error(err))
		return nil, err
	}

	c := New(items)
	if !fn(c) {
		log.Debug("cart unchanged")
		return c.Summary(), nil
	}

	if err := s.repo.Save(ctx, sessionID, c.Items()); err != nil {
		log.Error("failed to persist cart", zap.Error(err))
		return nil, err
	}
	s.metrics.CartMutation(op)

	sum := c.Summary()
	log.Debug("cart persisted",
		zap.Int("lines", len(sum.Items)),
		zap.Int("item_count", sum.ItemCount),
	)
	return sum, nil
}
