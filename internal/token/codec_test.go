package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-social-api/internal/model"
)

type frozenClock struct {
	now time.Time
}

func (c *frozenClock) Now() time.Time { return c.now }

func (c *frozenClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCodec(t *testing.T) (*Codec, *frozenClock) {
	t.Helper()

	clock := &frozenClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	codec, err := NewCodec("test-secret", 15*time.Minute, 7*24*time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return codec, clock
}

func TestNewCodecRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("  ", time.Minute, time.Hour)
	require.Error(t, err)

	_, err = NewCodec("secret", 0, time.Hour)
	require.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	codec, clock := newTestCodec(t)
	subject := Subject{UserID: "user-1", Email: "a@x.com"}

	t.Run("access token round trip", func(t *testing.T) {
		issued, err := codec.Issue(subject, model.TokenAccess)
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Add(15*time.Minute), issued.ExpiresAt)

		claims, err := codec.Verify(issued.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, model.TokenAccess, claims.Type)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("refresh token uses the long ttl", func(t *testing.T) {
		issued, err := codec.Issue(subject, model.TokenRefresh)
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Add(7*24*time.Hour), issued.ExpiresAt)

		claims, err := codec.Verify(issued.Token)
		require.NoError(t, err)
		assert.Equal(t, model.TokenRefresh, claims.Type)
	})

	t.Run("tokens minted in the same instant differ", func(t *testing.T) {
		first, err := codec.Issue(subject, model.TokenAccess)
		require.NoError(t, err)
		second, err := codec.Issue(subject, model.TokenAccess)
		require.NoError(t, err)
		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("rejects unknown kinds and empty subjects", func(t *testing.T) {
		_, err := codec.Issue(subject, model.TokenKind("session"))
		require.Error(t, err)

		_, err = codec.Issue(Subject{}, model.TokenAccess)
		require.Error(t, err)
	})
}

func TestVerifyExpiry(t *testing.T) {
	t.Parallel()

	codec, clock := newTestCodec(t)
	issued, err := codec.IssueWithTTL(Subject{UserID: "user-1"}, model.TokenAccess, time.Minute)
	require.NoError(t, err)

	clock.Advance(59 * time.Second)
	_, err = codec.Verify(issued.Token)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = codec.Verify(issued.Token)
	require.ErrorIs(t, err, model.ErrExpiredToken)

	clock.Advance(24 * time.Hour)
	_, err = codec.Verify(issued.Token)
	require.ErrorIs(t, err, model.ErrExpiredToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	codec, clock := newTestCodec(t)
	issued, err := codec.Issue(Subject{UserID: "user-1"}, model.TokenAccess)
	require.NoError(t, err)

	other, err := NewCodec("another-secret", time.Minute, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.Issue(Subject{UserID: "user-1"}, model.TokenAccess)
	require.NoError(t, err)

	unknownKind := signRaw(t, jwt.MapClaims{
		"user_id": "user-1",
		"type":    "session",
		"exp":     clock.Now().Add(time.Hour).Unix(),
	})
	missingExp := signRaw(t, jwt.MapClaims{"user_id": "user-1", "type": "access"})
	missingUser := signRaw(t, jwt.MapClaims{"type": "access", "exp": clock.Now().Add(time.Hour).Unix()})

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "user-1",
		"type":    "access",
		"exp":     clock.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":         "not-a-token",
		"empty":           "",
		"tampered":        tamperSignature(issued.Token),
		"foreign secret":  foreign.Token,
		"unknown kind":    unknownKind,
		"missing exp":     missingExp,
		"missing user id": missingUser,
		"alg none":        unsigned,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Verify(raw)
			require.ErrorIs(t, err, model.ErrMalformedToken)
		})
	}
}

func tamperSignature(raw string) string {
	idx := strings.LastIndex(raw, ".") + 1
	replacement := "A"
	if raw[idx:idx+1] == "A" {
		replacement = "B"
	}
	return raw[:idx] + replacement + raw[idx+1:]
}

func signRaw(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
