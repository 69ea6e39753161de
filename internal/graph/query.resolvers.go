package graph

import (
	"context"
	"errors"

	"sutra-be/internal/api"
	"sutra-be/internal/order"
	"sutra-be/internal/pricing"
	"sutra-be/internal/product"
	"sutra-be/internal/user"
	"sutra-be/internal/utils"
)

func (r *Resolver) queryFields() map[string]fieldResolver {
	return map[string]fieldResolver{
		"products":    r.products,
		"product":     r.product,
		"cart":        r.cart,
		"wishlist":    r.wishlist,
		"me":          r.me,
		"myOrders":    r.myOrders,
		"order":       r.order,
		"adminOrders": r.adminOrders,
	}
}

func (r *Resolver) products(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		Category string                `json:"category"`
		Search   string                `json:"search"`
		Sort     product.SortField     `json:"sort"`
		Order    product.SortDirection `json:"order"`
		Page     int                   `json:"page"`
		Limit    int                   `json:"limit"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}

	res, err := r.Catalog.List(ctx, product.ListOptions{
		Category:  in.Category,
		Search:    in.Search,
		SortField: in.Sort,
		SortDir:   in.Order,
		Page:      in.Page,
		Limit:     in.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]product.Product, len(res.Items))
	for i, p := range res.Items {
		items[i] = r.decorate(p)
	}
	res.Items = items
	return res, nil
}

func (r *Resolver) product(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		Slug    string `json:"slug"`
		Variant string `json:"variant"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}

	p, err := r.Catalog.GetProductBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	detail := api.ProductDetail{Product: r.decorate(*p)}
	if v, ok := pricing.ResolveVariant(detail.Product, in.Variant); ok {
		detail.SelectedVariant = &v
	}
	detail.DisplayPrice = pricing.DisplayPrice(detail.SelectedVariant)
	return detail, nil
}

func (r *Resolver) cart(ctx context.Context, _ map[string]any) (any, error) {
	return r.Carts.Get(ctx, sessionID(ctx))
}

func (r *Resolver) wishlist(ctx context.Context, _ map[string]any) (any, error) {
	products, err := r.Wishlist.Products(ctx, sessionID(ctx))
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i] = r.decorate(products[i])
	}
	return products, nil
}

// me is null for a guest session.
func (r *Resolver) me(ctx context.Context, _ map[string]any) (any, error) {
	u, err := r.Users.Current(ctx, sessionID(ctx))
	if errors.Is(err, user.ErrNotSignedIn) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Resolver) myOrders(ctx context.Context, _ map[string]any) (any, error) {
	uid, _ := utils.GetUserIDFromContext(ctx)
	return r.Orders.ListForUser(ctx, uid)
}

func (r *Resolver) order(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.viewableOrder(ctx, in.ID)
}

func (r *Resolver) adminOrders(ctx context.Context, args map[string]any) (any, error) {
	var in struct {
		Status  order.Status `json:"status"`
		Search  string       `json:"search"`
		Product string       `json:"product"`
		Page    int          `json:"page"`
		Limit   int          `json:"limit"`
	}
	if err := bind(args, &in); err != nil {
		return nil, err
	}
	return r.Orders.ListAll(ctx, order.ListOptions{
		Status:  in.Status,
		Search:  in.Search,
		Product: in.Product,
		Page:    in.Page,
		Limit:   in.Limit,
	})
}

func (r *Resolver) viewableOrder(ctx context.Context, id string) (*order.Order, error) {
	o, err := r.Orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	uid, _ := utils.GetUserIDFromContext(ctx)
	if !o.CanView(uid, utils.IsAdmin(ctx)) {
		return nil, order.ErrUnauthorized
	}
	return o, nil
}
