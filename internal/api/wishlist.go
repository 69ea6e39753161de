package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sutra-be/internal/utils"
)

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	products, err := h.Wishlist.Products(r.Context(), sessionID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	for i := range products {
		products[i] = h.decorate(products[i])
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"items": products})
}

func (h *Handler) AddWishlist(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Wishlist.Add(r.Context(), sessionID(r.Context()), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"productIds": ids})
}

func (h *Handler) RemoveWishlist(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Wishlist.Remove(r.Context(), sessionID(r.Context()), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"productIds": ids})
}
