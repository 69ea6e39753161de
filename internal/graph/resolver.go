// Package graph serves the storefront as a GraphQL API over the same
// services as the JSON routes.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sutra-be/internal/cart"
	"sutra-be/internal/checkout"
	"sutra-be/internal/order"
	"sutra-be/internal/pricing"
	"sutra-be/internal/product"
	"sutra-be/internal/user"
	"sutra-be/internal/utils"
	"sutra-be/internal/wishlist"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2/ast"
)

const complexityLimit = 300

type Resolver struct {
	Catalog  product.Catalog
	Carts    cart.Service
	Wishlist wishlist.Service
	Users    user.Service
	Orders   order.Service
	Checkout checkout.Service

	PriceReferenceSize int
	PriceReferenceUnit string
}

// NewHandler serves POST and GET /graphql. Session claims are read from the
// request context, so it belongs behind the auth middleware.
func NewHandler(r *Resolver) http.Handler {
	srv := handler.New(NewExecutableSchema(r))
	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))
	srv.Use(extension.FixedComplexityLimit(complexityLimit))
	return srv
}

func (r *Resolver) decorate(p product.Product) product.Product {
	return pricing.Decorate(p, r.PriceReferenceSize, r.PriceReferenceUnit)
}

func sessionID(ctx context.Context) string {
	sid, _ := utils.GetSessionIDFromContext(ctx)
	return sid
}

// bind decodes coerced field arguments into dest by their json names.
func bind(args map[string]any, dest any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}
