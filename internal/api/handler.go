// Package api exposes the storefront over JSON/HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"sutra-be/internal/address"
	"sutra-be/internal/cart"
	"sutra-be/internal/checkout"
	"sutra-be/internal/logger"
	"sutra-be/internal/order"
	"sutra-be/internal/product"
	"sutra-be/internal/storage"
	"sutra-be/internal/user"
	"sutra-be/internal/utils"
	"sutra-be/internal/wishlist"

	"go.uber.org/zap"
)

// Deps are the services the handlers call.
type Deps struct {
	Catalog  product.Catalog
	Carts    cart.Service
	Wishlist wishlist.Service
	Users    user.Service
	Orders   order.Service
	Checkout checkout.Service

	// Health is pinged by /healthz when the store supports it.
	Health storage.Pinger
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// GraphQL serves /graphql when set.
	GraphQL http.Handler

	PriceReferenceSize int
	PriceReferenceUnit string
}

type Handler struct {
	Deps
}

func NewHandler(d Deps) *Handler {
	return &Handler{Deps: d}
}

const maxBodyBytes = 1 << 20

var errBadBody = errors.New("invalid request body")

// decodeJSON reads a JSON body and runs its validate tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	defer io.Copy(io.Discard, r.Body)

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		return errBadBody
	}
	return utils.ValidateStruct(dest)
}

func sessionID(ctx context.Context) string {
	sid, _ := utils.GetSessionIDFromContext(ctx)
	return sid
}

// StatusFor maps a domain error onto an HTTP status code. Unknown errors
// are 500.
func StatusFor(err error) int {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, errBadBody):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrSessionRequired),
		errors.Is(err, user.ErrSessionRequired),
		errors.Is(err, wishlist.ErrSessionRequired),
		errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrNotSignedIn),
		errors.Is(err, checkout.ErrSignInToSave):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, address.ErrAddressNotFound):
		return http.StatusNotFound
	case errors.Is(err, address.ErrDuplicateLabel):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrCartEmpty),
		errors.Is(err, checkout.ErrAddressRequired),
		errors.Is(err, checkout.ErrLabelRequired),
		errors.Is(err, address.ErrLabelRequired),
		errors.Is(err, user.ErrEmailRequired),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPaymentStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		utils.WriteValidationError(w, verr.Fields)
		return
	}

	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("unhandled error",
			zap.String("layer", "api"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", status)
		return
	}
	utils.WriteJSONError(w, err.Error(), status)
}
