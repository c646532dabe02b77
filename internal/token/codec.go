// Package token issues and verifies the signed, expiring bearer tokens used
// for sessions. It is stateless: revocation is checked by callers.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-social-api/internal/model"
)

// Claims is the token payload. UserID, Email, Type and exp are the
// contract; iat and jti make every issued token string unique.
type Claims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Type   model.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// Subject is the caller-supplied part of the claims.
type Subject struct {
	UserID string
	Email  string
}

// Issued is a signed token with the kind and expiry it was minted for.
type Issued struct {
	Token     string
	Kind      model.TokenKind
	ExpiresAt time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces time.Now for both issuing and verification.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// Codec signs and verifies HS256 tokens with one secret and a TTL per kind.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec requires a non-blank secret and positive TTLs.
func NewCodec(secret string, accessTTL time.Duration, refreshTTL time.Duration, opts ...Option) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token signing secret is required")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}

	c := &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// TTL is the lifetime given to tokens of kind.
func (c *Codec) TTL(kind model.TokenKind) time.Duration {
	if kind == model.TokenRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue mints a token of kind with the configured TTL.
func (c *Codec) Issue(subject Subject, kind model.TokenKind) (Issued, error) {
	return c.IssueWithTTL(subject, kind, c.TTL(kind))
}

// IssueWithTTL mints a token of kind that expires ttl from now.
func (c *Codec) IssueWithTTL(subject Subject, kind model.TokenKind, ttl time.Duration) (Issued, error) {
	if !kind.Valid() {
		return Issued{}, fmt.Errorf("unknown token kind %q", kind)
	}
	if strings.TrimSpace(subject.UserID) == "" {
		return Issued{}, errors.New("token subject user id is required")
	}

	now := c.now().UTC()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID: subject.UserID,
		Email:  subject.Email,
		Type:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return Issued{}, fmt.Errorf("sign %s token: %w", kind, err)
	}

	// exp is serialized with second precision.
	return Issued{Token: signed, Kind: kind, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks signature, structure and expiry. It returns
// model.ErrExpiredToken once now >= exp and model.ErrMalformedToken for any
// other failure.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrExpiredToken
		}
		return nil, model.ErrMalformedToken
	}
	if !parsed.Valid {
		return nil, model.ErrMalformedToken
	}

	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil, model.ErrExpiredToken
	}
	if !claims.Type.Valid() || strings.TrimSpace(claims.UserID) == "" {
		return nil, model.ErrMalformedToken
	}

	return claims, nil
}
