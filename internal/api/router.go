package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sutra-be/internal/middleware"
)

// NewRouter wires every route behind mws, applied in the order given.
func NewRouter(h *Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(mws...)

	r.Get("/healthz", h.Healthz)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}
	if h.GraphQL != nil {
		r.Handle("/graphql", h.GraphQL)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", h.StartSession)

		r.Get("/products", h.ListProducts)
		r.Get("/products/{slug}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			r.Post("/auth/login", h.Login)
			r.Post("/auth/admin/login", h.AdminLogin)
			r.Post("/auth/logout", h.Logout)

			r.Get("/me", h.Me)
			r.Post("/me/addresses", h.AddAddress)
			r.Put("/me/addresses/{addressID}", h.UpdateAddress)
			r.Delete("/me/addresses/{addressID}", h.RemoveAddress)

			r.Get("/cart", h.GetCart)
			r.Post("/cart/items", h.AddCartItem)
			r.Patch("/cart/items/{productID}", h.UpdateCartItem)
			r.Delete("/cart/items/{productID}", h.RemoveCartItem)
			r.Delete("/cart", h.ClearCart)

			r.Get("/wishlist", h.GetWishlist)
			r.Post("/wishlist/{productID}", h.AddWishlist)
			r.Delete("/wishlist/{productID}", h.RemoveWishlist)

			r.Post("/checkout", h.PlaceOrder)

			r.Get("/orders", h.ListMyOrders)
			r.Get("/orders/{orderID}", h.GetOrder)
			r.Post("/orders/{orderID}/feedback", h.SubmitFeedback)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/orders", h.AdminListOrders)
			r.Post("/orders/{orderID}/status", h.AdminAppendStatus)
			r.Patch("/orders/{orderID}/payment", h.AdminUpdatePayment)
		})
	})

	return r
}
