package graph

import (
	"context"
	"time"

	"sutra-be/internal/address"
	"sutra-be/internal/checkout"
	"sutra-be/internal/logger"
	"sutra-be/internal/order"
	"sutra-be/internal/user"
	"sutra-be/internal/utils"

	"go.uber.org/zap"
)

// Admin sign-in is REST only.
func (r *Resolver) mutationFields() map[string]fieldResolver {
	return map[string]fieldResolver{
		"startSession":        r.startSession,
		"login":               r.login,
		"logout":              r.logout,
		"addAddress":          r.addAddress,
		"updateAddress":       r.updateAddress,
		"removeAddress":       r.removeAddress,
		"addToCart":           r.addToCart,
		"updateCartItem":      r.updateCartItem,
		"removeFromCart":      r.removeFromCart,
		"clearCart":           r.clearCart,
		"addToWishlist":       r.addToWishlist,
		"removeFromWishlist":  r.removeFromWishlist,
		"checkout":            r.checkout,
		"submitFeedback":      r.submitFeedback,
		"appendOrderStatus":   r.appendOrderStatus,
		"updatePaymentStatus": r.updatePaymentStatus,
	}
}

func (r *Resolver) startSession(ctx context.Context, _ map[string]any) (any, error) {
	return r.Users.StartSession(ctx)
}

func (r *Resolver) login(ctx context.Context, args map[string]any) (any, error) {
	var in user.LoginInput
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Users.Login(ctx, sessionID(ctx), in)
}

func (r *Resolver) logout(ctx context.Context, _ map[string]any) (any, error) {
	return r.Users.Logout(ctx, sessionID(ctx))
}

func (r *Resolver) addAddress(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		Input address.ShippingAddress `json:"input"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Users.AddAddress(ctx, sessionID(ctx), in.Input)
}

func (r *Resolver) updateAddress(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ID    string                  `json:"id"`
		Input address.ShippingAddress `json:"input"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Users.UpdateAddress(ctx, sessionID(ctx), in.ID, in.Input)
}

func (r *Resolver) removeAddress(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	if err := r.Users.RemoveAddress(ctx, sessionID(ctx), in.ID); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) addToCart(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ProductID string `json:"productId"`
		Variant   string `json:"variant"`
		Quantity  int    `json:"quantity"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Carts.AddBySelection(ctx, sessionID(ctx), in.ProductID, in.Variant, in.Quantity)
}

func (r *Resolver) updateCartItem(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ProductID  string `json:"productId"`
		Quantity   int    `json:"quantity"`
		VariantSKU string `json:"variantSku"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Carts.UpdateQuantity(ctx, sessionID(ctx), in.ProductID, in.Quantity, in.VariantSKU)
}

func (r *Resolver) removeFromCart(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ProductID  string `json:"productId"`
		VariantSKU string `json:"variantSku"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Carts.RemoveByID(ctx, sessionID(ctx), in.ProductID, in.VariantSKU)
}

func (r *Resolver) clearCart(ctx context.Context, _ map[string]any) (any, error) {
	sid := sessionID(ctx)
	if err := r.Carts.Clear(ctx, sid); err != nil {
		return nil, err
	}
	return r.Carts.Get(ctx, sid)
}

func (r *Resolver) addToWishlist(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Wishlist.Add(ctx, sessionID(ctx), in.ProductID)
}

func (r *Resolver) removeFromWishlist(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Wishlist.Remove(ctx, sessionID(ctx), in.ProductID)
}

func (r *Resolver) checkout(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		Input checkout.Input `json:"input"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(in.Input); err != nil {
		return nil, err
	}

	o, err := r.Checkout.PlaceOrder(ctx, sessionID(ctx), in.Input)
	if err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("order placed",
		zap.String("layer", "graph"),
		zap.String("order_id", o.ID),
	)
	return o, nil
}

func (r *Resolver) submitFeedback(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		OrderID string `json:"orderId"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	o, err := r.viewableOrder(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	return r.Orders.MarkFeedbackSubmitted(ctx, o.ID)
}

func (r *Resolver) appendOrderStatus(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		OrderID   string       `json:"orderId"`
		Status    order.Status `json:"status"`
		Timestamp *time.Time   `json:"timestamp"`
		Notes     string       `json:"notes" validate:"omitempty,max=500"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	var at time.Time
	if in.Timestamp != nil {
		at = in.Timestamp.UTC()
	}
	return r.Orders.AppendStatus(ctx, in.OrderID, in.Status, at, in.Notes)
}

func (r *Resolver) updatePaymentStatus(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		OrderID       string              `json:"orderId"`
		PaymentStatus order.PaymentStatus `json:"paymentStatus"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Orders.UpdatePaymentStatus(ctx, in.OrderID, in.PaymentStatus)
}
