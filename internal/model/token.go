package model

import "time"

type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

func (k TokenKind) Valid() bool {
	return k == TokenAccess || k == TokenRefresh
}

type RevocationReason string

const (
	ReasonLogout      RevocationReason = "logout"
	ReasonCompromised RevocationReason = "compromised"
)

// RevocationEntry is a blacklisted token. Entries are insert-only.
type RevocationEntry struct {
	ID            string           `json:"id"`
	Token         string           `json:"-"`
	Kind          TokenKind        `json:"token_type"`
	UserID        string           `json:"user_id"`
	BlacklistedAt time.Time        `json:"blacklisted_at"`
	ExpiresAt     time.Time        `json:"expires_at"`
	Reason        RevocationReason `json:"reason"`
}
