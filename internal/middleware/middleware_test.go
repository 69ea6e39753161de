package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sutra-be/internal/auth"
	"sutra-be/internal/logger"
	"sutra-be/internal/user"
	"sutra-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// fakeSessions verifies tokens with secret and serves signed-in users by
// session id.
type fakeSessions struct {
	secret string
	users  map[string]*user.AppUser
	err    error
}

func (f fakeSessions) ParseToken(token string) (*user.CustomClaims, error) {
	return user.ParseJWT(f.secret, token)
}

func (f fakeSessions) Current(_ context.Context, sessionID string) (*user.AppUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[sessionID]
	if !ok {
		return nil, user.ErrNotSignedIn
	}
	return u, nil
}

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS("http://localhost:3000")(nextHandler)

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuth(t *testing.T) {
	mw := AuthMiddleware(fakeSessions{
		secret: testSecret,
		users:  map[string]*user.AppUser{"sid-1": {UID: "u1", Role: utils.RoleRetail}},
	})

	t.Run("Missing Token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetSessionIDFromContext(r.Context())
			assert.False(t, ok, "Context should not contain a session")
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		tokenString, err := user.GenerateJWT(testSecret, "sid-1", "u1", utils.RoleRetail, "a@b.com", time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := utils.GetSessionIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "sid-1", sid)
			assert.Equal(t, "sid-1", logger.SessionIDFrom(r.Context()))

			uid, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "u1", uid)
			w.WriteHeader(http.StatusOK)
		})

		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Session Cookie", func(t *testing.T) {
		tokenString, err := user.GenerateJWT(testSecret, "sid-cookie", "", utils.RoleRetail, "", time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: tokenString})
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := utils.GetSessionIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "sid-cookie", sid)
			w.WriteHeader(http.StatusOK)
		})

		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Expired Token", func(t *testing.T) {
		tokenString, err := user.GenerateJWT(testSecret, "sid-1", "", utils.RoleRetail, "", time.Now().Add(-31*24*time.Hour))
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic user:pass") // Wrong scheme
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetSessionIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type failingParser struct{}

func (failingParser) ParseToken(string) (*user.CustomClaims, error) {
	return nil, errors.New("nope")
}

func (failingParser) Current(context.Context, string) (*user.AppUser, error) {
	return nil, user.ErrNotSignedIn
}

func TestAuth_ParserError(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()

	AuthMiddleware(failingParser{})(http.NotFoundHandler()).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_StaleClaims(t *testing.T) {
	adminToken, err := user.GenerateJWT(testSecret, "sid-admin", "u-admin", utils.RoleAdmin, "admin@sutra.test", time.Now())
	require.NoError(t, err)

	serve := func(sessions SessionVerifier, handler http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		AuthMiddleware(sessions)(handler).ServeHTTP(w, req)
		return w
	}
	admitted := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("StillSignedIn", func(t *testing.T) {
		w := serve(fakeSessions{
			secret: testSecret,
			users:  map[string]*user.AppUser{"sid-admin": {UID: "u-admin", Role: utils.RoleAdmin}},
		}, admitted)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("LoggedOut", func(t *testing.T) {
		var sid, uid, role string
		w := serve(fakeSessions{secret: testSecret}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, _ = utils.GetSessionIDFromContext(r.Context())
			uid, _ = utils.GetUserIDFromContext(r.Context())
			role = utils.GetUserRoleFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sid-admin", sid)
		assert.Empty(t, uid)
		assert.Equal(t, utils.RoleRetail, role)

		w = serve(fakeSessions{secret: testSecret}, admitted)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("RoleChanged", func(t *testing.T) {
		w := serve(fakeSessions{
			secret: testSecret,
			users:  map[string]*user.AppUser{"sid-admin": {UID: "u-admin", Role: utils.RoleRetail}},
		}, admitted)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("StoreDown", func(t *testing.T) {
		w := serve(fakeSessions{secret: testSecret, err: errors.New("connection refused")}, admitted)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequireSessionAndAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		ctx        context.Context
		handler    http.Handler
		wantStatus int
	}{
		{"session missing", context.Background(), RequireSession(ok), http.StatusUnauthorized},
		{"session present", utils.SetSessionContext(context.Background(), "s1", "", "", utils.RoleRetail), RequireSession(ok), http.StatusOK},
		{"admin missing session", context.Background(), RequireAdmin(ok), http.StatusUnauthorized},
		{"admin as retail", utils.SetSessionContext(context.Background(), "s1", "u1", "", utils.RoleRetail), RequireAdmin(ok), http.StatusForbidden},
		{"admin as admin", utils.SetSessionContext(context.Background(), "s1", "u1", "", utils.RoleAdmin), RequireAdmin(ok), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil).WithContext(tt.ctx)
			w := httptest.NewRecorder()

			tt.handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
