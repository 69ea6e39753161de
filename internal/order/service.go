package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"sutra-be/internal/cart"
	"sutra-be/internal/logger"
	"sutra-be/internal/metrics"
	"sutra-be/internal/storage"
	"sutra-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	ListForUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context, opts ListOptions) (*ListResult, error)
	AppendStatus(ctx context.Context, orderID string, status Status, at time.Time, notes string) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, status PaymentStatus) (*Order, error)
	MarkFeedbackSubmitted(ctx context.Context, orderID string) (*Order, error)
}

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

type service struct {
	repo    Repository
	locks   *storage.KeyedMutex
	metrics *metrics.Storefront
	now     func() time.Time
	newID   func(time.Time) string
}

func NewService(repo Repository, m *metrics.Storefront) Service {
	return &service{
		repo:    repo,
		locks:   storage.NewKeyedMutex(),
		metrics: m,
		now:     time.Now,
		newID:   utils.GenerateOrderNumber,
	}
}

// Create places a new Pending order. Totals and the item summary are
// computed here, never taken from the caller.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "order.Create"),
	)

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := s.now().UTC()
	subtotal, total := ComputeTotals(input.Items, input.ShippingCost)

	o := Order{
		ID:            s.newID(now),
		UserID:        input.UserID,
		CustomerInfo:  input.CustomerInfo,
		Items:         append([]cart.LineItem(nil), input.Items...),
		ItemSummary:   ItemSummary(input.Items),
		Subtotal:      subtotal,
		ShippingCost:  RoundAmount(input.ShippingCost),
		TotalAmount:   total,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
		StatusHistory: NewHistory(now),
	}

	err := s.mutate(ctx, func(orders []Order) ([]Order, error) {
		return append(orders, o), nil
	})
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	s.metrics.OrderCreated()
	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Float64("total", o.TotalAmount),
		zap.Int("lines", len(o.Items)),
	)
	return &o, nil
}

// Get returns ErrOrderNotFound for unknown ids.
func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// ListForUser returns the user's orders, newest first.
func (s *service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Order, 0)
	for _, o := range orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListAll returns one page of orders, newest first, after the status,
// search and product filters.
func (s *service) ListAll(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, opts.Status)
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	} else if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}

	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	product := strings.TrimSpace(opts.Product)
	matched := make([]Order, 0, len(orders))
	for _, o := range orders {
		if opts.Status != "" && o.Status != opts.Status {
			continue
		}
		if search != "" && !o.matchesSearch(search) {
			continue
		}
		if product != "" && !o.hasItemNamed(product) {
			continue
		}
		matched = append(matched, o)
	}
	sortNewestFirst(matched)

	total := len(matched)
	start := min((opts.Page-1)*opts.Limit, total)
	end := min(start+opts.Limit, total)

	return &ListResult{
		Items:      matched[start:end],
		TotalCount: total,
		Page:       opts.Page,
		Limit:      opts.Limit,
	}, nil
}

func (s *service) AppendStatus(
	ctx context.Context,
	orderID string,
	status Status,
	at time.Time,
	notes string,
) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "order.AppendStatus"),
		zap.String("order_id", orderID),
	)

	o, err := s.update(ctx, orderID, func(o *Order, now time.Time) {
		AppendStatus(o, status, at, notes, now)
	})
	if err != nil {
		log.Error("failed to append status", zap.Error(err))
		return nil, err
	}

	s.metrics.StatusAppended(string(status))
	if StatusDiverged(*o) {
		latest, _ := LatestHistoryStatus(*o)
		log.Warn("order status differs from latest history entry",
			zap.String("status", string(o.Status)),
			zap.String("history_status", string(latest)),
		)
	}
	log.Info("order status appended", zap.String("status", string(status)))
	return o, nil
}

func (s *service) UpdatePaymentStatus(ctx context.Context, orderID string, status PaymentStatus) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, status)
	}
	return s.update(ctx, orderID, func(o *Order, now time.Time) {
		o.PaymentStatus = status
		o.UpdatedAt = now
	})
}

func (s *service) MarkFeedbackSubmitted(ctx context.Context, orderID string) (*Order, error) {
	return s.update(ctx, orderID, func(o *Order, now time.Time) {
		o.FeedbackSubmitted = true
		o.UpdatedAt = now
	})
}

// update applies fn to one order and persists the collection, replacing
// the prior record by id.
func (s *service) update(ctx context.Context, orderID string, fn func(*Order, time.Time)) (*Order, error) {
	var updated Order
	err := s.mutate(ctx, func(orders []Order) ([]Order, error) {
		for i := range orders {
			if orders[i].ID != orderID {
				continue
			}
			fn(&orders[i], s.now().UTC())
			updated = orders[i]
			return orders, nil
		}
		return nil, ErrOrderNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// mutate is one load-modify-save cycle under the order collection lock.
func (s *service) mutate(ctx context.Context, fn func([]Order) ([]Order, error)) error {
	unlock := s.locks.Lock(storage.KeyOrders)
	defer unlock()

	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	orders, err = fn(orders)
	if err != nil {
		return err
	}
	return s.repo.SaveAll(ctx, orders)
}

func sortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
