package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sutra-be/internal/utils"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	// Variant is a SKU or a weight label; empty selects the default.
	Variant  string `json:"variant,omitempty"`
	Quantity int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity   int    `json:"quantity"`
	VariantSKU string `json:"variantSku,omitempty"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Carts.Get(r.Context(), sessionID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sum)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sum, err := h.Carts.AddBySelection(r.Context(), sessionID(r.Context()), req.ProductID, req.Variant, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sum)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sum, err := h.Carts.UpdateQuantity(r.Context(), sessionID(r.Context()), chi.URLParam(r, "productID"), req.Quantity, req.VariantSKU)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sum)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Carts.RemoveByID(r.Context(), sessionID(r.Context()), chi.URLParam(r, "productID"), r.URL.Query().Get("variantSku"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sum)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), sessionID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
