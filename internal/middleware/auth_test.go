package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
)

type stubGate struct {
	identity     model.Identity
	err          error
	gotHeader    string
	allowRevoked bool
}

func (g *stubGate) Authenticate(_ context.Context, header string, opts ...service.GateOption) (model.Identity, error) {
	g.gotHeader = header
	g.allowRevoked = len(opts) > 0
	return g.identity, g.err
}

func recordError(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(err.Error()))
}

func TestRequireAuthBindsIdentity(t *testing.T) {
	gate := &stubGate{identity: model.Identity{UserID: "user-1", Username: "alice"}}
	mw := NewAuthMiddleware(gate, recordError)

	var seen model.Identity
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = identity
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/profile", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", seen.UserID)
	assert.Equal(t, "Bearer abc", gate.gotHeader)
	assert.False(t, gate.allowRevoked)
}

func TestRequireAuthRejects(t *testing.T) {
	gate := &stubGate{err: model.ErrRevokedToken}
	mw := NewAuthMiddleware(gate, recordError)

	called := false
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, model.ErrRevokedToken.Error(), rec.Body.String())
}

func TestRequireAuthAllowRevokedPassesOption(t *testing.T) {
	gate := &stubGate{identity: model.Identity{UserID: "user-1"}}
	mw := NewAuthMiddleware(gate, recordError)

	handler := mw.RequireAuthAllowRevoked(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gate.allowRevoked)
}

func TestIdentityFromContextMissing(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)
}
