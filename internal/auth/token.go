// Package auth locates the session token on an incoming request.
package auth

import (
	"net/http"
	"strings"
)

// SessionCookie is the cookie consulted when no bearer header is sent.
const SessionCookie = "sutra_session"

// ExtractSessionToken returns the bearer token, falling back to the session
// cookie. ok is false when the request carries neither.
func ExtractSessionToken(r *http.Request) (token string, ok bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); t != "" {
			return t, true
		}
	}

	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}
