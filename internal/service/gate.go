package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-social-api/internal/model"
	"go-social-api/internal/token"
)

const bearerPrefix = "bearer "

// Gate turns an Authorization header value into an authenticated identity.
type Gate struct {
	ledger *RevocationLedger
	codec  *token.Codec
	users  UserStore
}

func NewGate(ledger *RevocationLedger, codec *token.Codec, users UserStore) *Gate {
	return &Gate{ledger: ledger, codec: codec, users: users}
}

type gateOptions struct {
	allowRevoked bool
}

type GateOption func(*gateOptions)

// AllowRevoked skips the ledger check. Only logout uses it, so that a
// repeated logout with an already revoked pair still succeeds.
func AllowRevoked() GateOption {
	return func(o *gateOptions) { o.allowRevoked = true }
}

// Authenticate checks, in order: presence, revocation, signature and expiry,
// token kind, and that the subject still exists.
func (g *Gate) Authenticate(ctx context.Context, header string, opts ...GateOption) (model.Identity, error) {
	var options gateOptions
	for _, opt := range opts {
		opt(&options)
	}

	raw := ExtractBearer(header)
	if raw == "" {
		return model.Identity{}, model.ErrMissingToken
	}

	if !options.allowRevoked {
		revoked, err := g.ledger.Contains(ctx, raw)
		if err != nil {
			return model.Identity{}, err
		}
		if revoked {
			return model.Identity{}, model.ErrRevokedToken
		}
	}

	claims, err := g.codec.Verify(raw)
	if err != nil {
		return model.Identity{}, err
	}
	if claims.Type != model.TokenAccess {
		return model.Identity{}, model.ErrWrongTokenKind
	}

	user, err := g.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Identity{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("load token subject: %w", err)
	}

	return model.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Token:     raw,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ExtractBearer strips an optional case-insensitive "Bearer " prefix. Bare
// tokens are returned as-is.
func ExtractBearer(header string) string {
	value := strings.TrimSpace(header)
	if len(value) >= len(bearerPrefix) && strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		value = strings.TrimSpace(value[len(bearerPrefix):])
	}
	return value
}
