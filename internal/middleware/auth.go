package middleware

import (
	"context"
	"errors"
	"net/http"

	"sutra-be/internal/auth"
	"sutra-be/internal/logger"
	"sutra-be/internal/user"
	"sutra-be/internal/utils"

	"go.uber.org/zap"
)

// SessionVerifier validates a session token and reports who the session is
// currently signed in as.
type SessionVerifier interface {
	ParseToken(token string) (*user.CustomClaims, error)
	Current(ctx context.Context, sessionID string) (*user.AppUser, error)
}

// AuthMiddleware puts the session claims of the request token (bearer header
// or session cookie) into the request context. Requests without a token pass
// through anonymous; a token that fails validation is rejected.
//
// Signed-in claims only hold while the stored session user still has the same
// uid and role. Otherwise (logout, sign-in as someone else) the request goes
// on as a guest of the same session.
func AuthMiddleware(sessions SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := auth.ExtractSessionToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromCtx(r.Context()).With(zap.String("layer", "middleware"))

			claims, err := sessions.ParseToken(tokenStr)
			if err != nil {
				log.Info("rejected session token", zap.Error(err))
				utils.WriteJSONError(w, "invalid or expired session token", http.StatusUnauthorized)
				return
			}

			uid, email, role := claims.UserID, claims.Email, claims.Role
			if uid != "" || role != utils.RoleRetail {
				u, err := sessions.Current(r.Context(), claims.SessionID)
				switch {
				case errors.Is(err, user.ErrNotSignedIn):
					u = nil
				case err != nil:
					log.Error("failed to verify session user", zap.Error(err))
					utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
					return
				}
				if u == nil || u.UID != uid || u.Role != role {
					log.Info("token claims no longer match session, continuing as guest",
						zap.String("user_id", uid),
						zap.String("role", role),
					)
					uid, email, role = "", "", utils.RoleRetail
				}
			}

			ctx := utils.SetSessionContext(r.Context(), claims.SessionID, uid, email, role)
			ctx = logger.WithSessionID(ctx, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no session token.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetSessionIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "session token required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session is not signed in as admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetSessionIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "session token required", http.StatusUnauthorized)
			return
		}
		if !utils.IsAdmin(r.Context()) {
			utils.WriteJSONError(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
