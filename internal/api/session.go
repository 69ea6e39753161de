package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sutra-be/internal/address"
	"sutra-be/internal/user"
	"sutra-be/internal/utils"
)

func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Users.StartSession(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sess)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input user.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := h.Users.Login(r.Context(), sessionID(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sess)
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var input user.AdminLoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	sess, err := h.Users.AdminLogin(r.Context(), sessionID(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sess)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Users.Logout(r.Context(), sessionID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sess)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Current(r.Context(), sessionID(r.Context()))
	if errors.Is(err, user.ErrNotSignedIn) {
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var input address.ShippingAddress
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := h.Users.AddAddress(r.Context(), sessionID(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, saved)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var input address.ShippingAddress
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := h.Users.UpdateAddress(r.Context(), sessionID(r.Context()), chi.URLParam(r, "addressID"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.RemoveAddress(r.Context(), sessionID(r.Context()), chi.URLParam(r, "addressID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
