package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"go-social-api/internal/model"
	"go-social-api/internal/service"
)

type authenticator interface {
	Authenticate(ctx context.Context, header string, opts ...service.GateOption) (model.Identity, error)
}

// ErrorWriter renders an error as an API response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type contextKey string

const identityContextKey contextKey = "identity"

// AuthMiddleware binds the auth gate to HTTP. Routes opt in explicitly with
// RequireAuth or RequireAuthAllowRevoked.
type AuthMiddleware struct {
	gate       authenticator
	writeError ErrorWriter
}

func NewAuthMiddleware(gate authenticator, writeError ErrorWriter) *AuthMiddleware {
	return &AuthMiddleware{gate: gate, writeError: writeError}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.require(next)
}

// RequireAuthAllowRevoked accepts tokens that are already in the revocation
// ledger. Logout is the only route that uses it.
func (m *AuthMiddleware) RequireAuthAllowRevoked(next http.Handler) http.Handler {
	return m.require(next, service.AllowRevoked())
}

func (m *AuthMiddleware) require(next http.Handler, opts ...service.GateOption) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.gate.Authenticate(r.Context(), r.Header.Get("Authorization"), opts...)
		if err != nil {
			if model.IsAuthError(err) {
				slog.Debug("request rejected by auth gate",
					"error", err,
					"path", r.URL.Path,
					"request_id", RequestIDFromContext(r.Context()),
				)
			}
			m.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}
