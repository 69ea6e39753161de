package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"sutra-be/internal/checkout"
	"sutra-be/internal/order"
	"sutra-be/internal/utils"
)

type appendStatusRequest struct {
	Status    order.Status `json:"status" validate:"required"`
	Timestamp *time.Time   `json:"timestamp,omitempty"`
	Notes     string       `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type updatePaymentRequest struct {
	PaymentStatus order.PaymentStatus `json:"paymentStatus" validate:"required"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var input checkout.Input
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.Checkout.PlaceOrder(r.Context(), sessionID(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserIDFromContext(r.Context())
	orders, err := h.Orders.ListForUser(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := h.viewableOrder(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	o, ok := h.viewableOrder(w, r)
	if !ok {
		return
	}
	updated, err := h.Orders.MarkFeedbackSubmitted(r.Context(), o.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

// viewableOrder loads the path order and checks the caller may see it.
func (h *Handler) viewableOrder(w http.ResponseWriter, r *http.Request) (*order.Order, bool) {
	o, err := h.Orders.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	uid, _ := utils.GetUserIDFromContext(r.Context())
	if !o.CanView(uid, utils.IsAdmin(r.Context())) {
		writeError(w, r, order.ErrUnauthorized)
		return nil, false
	}
	return o, true
}

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	res, err := h.Orders.ListAll(r.Context(), order.ListOptions{
		Status:  order.Status(q.Get("status")),
		Search:  q.Get("search"),
		Product: q.Get("product"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) AdminAppendStatus(w http.ResponseWriter, r *http.Request) {
	var req appendStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	var at time.Time
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}
	o, err := h.Orders.AppendStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status, at, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) AdminUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req updatePaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := h.Orders.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "orderID"), req.PaymentStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}
