package repository

import (
	"context"
	"fmt"
	"time"

	"go-social-api/internal/model"
)

// RevocationRepository stores the token blacklist. The token column carries a
// unique index, which is both the lookup path and the only guard against
// duplicate entries from concurrent logouts.
type RevocationRepository struct {
	db DBTX
}

func NewRevocationRepository(db DBTX) *RevocationRepository {
	return &RevocationRepository{db: db}
}

// Add reports whether a new row was written. A token that is already
// blacklisted is not an error.
func (r *RevocationRepository) Add(ctx context.Context, entry model.RevocationEntry) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO token_blacklist (id, token, token_type, user_id, blacklisted_at, expires_at, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (token) DO NOTHING`,
		entry.ID, entry.Token, string(entry.Kind), entry.UserID,
		entry.BlacklistedAt, entry.ExpiresAt, string(entry.Reason))
	if isUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("blacklist token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RevocationRepository) Contains(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token = $1)`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}
	return exists, nil
}

func (r *RevocationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM token_blacklist WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purge expired blacklist entries: %w", err)
	}
	return tag.RowsAffected(), nil
}
