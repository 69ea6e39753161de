package order

import (
	"context"
	"fmt"
	"time"

	"sutra-be/internal/logger"
	"sutra-be/internal/metrics"
	"sutra-be/internal/storage"

	"go.uber.org/zap"
)

// Repository reads and writes the whole order collection. The collection is
// one global value so admin listings see every session's orders.
type Repository interface {
	LoadAll(ctx context.Context) ([]Order, error)
	SaveAll(ctx context.Context, orders []Order) error
}

type repository struct {
	store   storage.Store
	metrics *metrics.Storefront
	now     func() time.Time
}

func NewRepository(store storage.Store, m *metrics.Storefront) Repository {
	return &repository{store: store, metrics: m, now: time.Now}
}

// LoadAll never fails on bad data: legacy records are sanitized and the
// defaults applied are logged. A failing store is returned as
// ErrFailedLoadOrders.
func (r *repository) LoadAll(ctx context.Context) ([]Order, error) {
	raw, ok, err := storage.LoadRaw(ctx, r.store, storage.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadOrders, err)
	}
	if !ok {
		return []Order{}, nil
	}

	orders, issues := DecodeOrders(raw, r.now().UTC())
	if len(issues) > 0 {
		r.metrics.FieldsDefaulted(len(issues))

		log := logger.FromCtx(ctx).With(
			zap.String("layer", "repository"),
			zap.String("method", "LoadAll"),
		)
		log.Warn("stored orders sanitized",
			zap.Int("orders", len(orders)),
			zap.Int("issues", len(issues)),
		)
		for _, issue := range issues {
			log.Debug("order field defaulted", zap.Stringer("issue", issue))
		}
	}
	return orders, nil
}

func (r *repository) SaveAll(ctx context.Context, orders []Order) error {
	if orders == nil {
		orders = []Order{}
	}
	if err := storage.Save(ctx, r.store, storage.KeyOrders, orders); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveOrders, err)
	}
	return nil
}
