package checkout

import (
	"context"
	"errors"
	"strings"

	"sutra-be/internal/address"
	"sutra-be/internal/cart"
	"sutra-be/internal/logger"
	"sutra-be/internal/order"
	"sutra-be/internal/user"

	"go.uber.org/zap"
)

type Service interface {
	PlaceOrder(ctx context.Context, sessionID string, input Input) (*order.Order, error)
}

type service struct {
	carts        cart.Service
	orders       order.Service
	users        user.Service
	shippingCost float64
}

func NewService(carts cart.Service, orders order.Service, users user.Service, shippingCost float64) Service {
	return &service{carts: carts, orders: orders, users: users, shippingCost: shippingCost}
}

// PlaceOrder turns the session cart into an order and clears the cart.
// Nothing is written when validation fails.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, input Input) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	sum, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sum.Items) == 0 {
		return nil, ErrCartEmpty
	}

	u, err := s.users.Current(ctx, sessionID)
	if err != nil && !errors.Is(err, user.ErrNotSignedIn) {
		return nil, err
	}

	ship, err := s.resolveAddress(ctx, sessionID, u, input)
	if err != nil {
		return nil, err
	}

	userID := ""
	if u != nil {
		userID = u.UID
	}

	o, err := s.orders.Create(ctx, order.CreateOrderInput{
		UserID:       userID,
		CustomerInfo: ship,
		Items:        sum.Items,
		ShippingCost: s.shippingCost,
	})
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	// the order stands even if the cart cannot be cleared
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Error("failed to clear cart after checkout",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}

	log.Info("checkout completed",
		zap.String("order_id", o.ID),
		zap.Bool("guest", userID == ""),
	)
	return o, nil
}

func (s *service) resolveAddress(
	ctx context.Context,
	sessionID string,
	u *user.AppUser,
	input Input,
) (address.ShippingAddress, error) {
	if input.AddressID != "" {
		if u == nil {
			return address.ShippingAddress{}, address.ErrAddressNotFound
		}
		saved, ok := address.Find(u.Addresses, input.AddressID)
		if !ok {
			return address.ShippingAddress{}, address.ErrAddressNotFound
		}
		return saved, nil
	}

	if input.ShippingAddress == nil {
		return address.ShippingAddress{}, ErrAddressRequired
	}
	ship := *input.ShippingAddress
	ship.ID = ""
	if err := address.Validate(ship); err != nil {
		return address.ShippingAddress{}, err
	}

	if !input.SaveAddress {
		return ship, nil
	}
	if u == nil {
		return address.ShippingAddress{}, ErrSignInToSave
	}
	label := strings.TrimSpace(input.AddressLabel)
	if label == "" {
		return address.ShippingAddress{}, ErrLabelRequired
	}

	toSave := ship
	toSave.Label = label
	saved, err := s.users.AddAddress(ctx, sessionID, toSave)
	if err != nil {
		return address.ShippingAddress{}, err
	}
	return *saved, nil
}
