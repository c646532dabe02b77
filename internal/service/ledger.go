package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go-social-api/internal/model"
)

// RevocationLedger is the durable set of tokens that must no longer be
// accepted, regardless of their own expiry.
type RevocationLedger struct {
	store RevocationStore
	now   Clock
}

func NewRevocationLedger(store RevocationStore, now Clock) *RevocationLedger {
	if now == nil {
		now = utcNow
	}
	return &RevocationLedger{store: store, now: now}
}

// Add records the token. Adding a token that is already present succeeds
// and reports recorded=false.
func (l *RevocationLedger) Add(ctx context.Context, entry model.RevocationEntry) (bool, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.BlacklistedAt.IsZero() {
		entry.BlacklistedAt = l.now()
	}
	if entry.Reason == "" {
		entry.Reason = model.ReasonLogout
	}

	recorded, err := l.store.Add(ctx, entry)
	if err != nil {
		return false, fmt.Errorf("revoke %s token: %w", entry.Kind, err)
	}
	return recorded, nil
}

func (l *RevocationLedger) Contains(ctx context.Context, token string) (bool, error) {
	found, err := l.store.Contains(ctx, token)
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return found, nil
}

// PurgeExpired drops entries whose token has expired on its own; the codec
// rejects those anyway, so the ledger no longer needs them.
func (l *RevocationLedger) PurgeExpired(ctx context.Context) (int64, error) {
	return l.store.PurgeExpired(ctx, l.now())
}

// Run purges expired entries every interval until ctx is cancelled.
func (l *RevocationLedger) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := l.PurgeExpired(ctx)
			if err != nil {
				slog.Error("revocation purge failed", "error", err)
				continue
			}
			if purged > 0 {
				slog.Info("revocation entries purged", "count", purged)
			}
		}
	}
}
