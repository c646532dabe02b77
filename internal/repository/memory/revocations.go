package memory

import (
	"context"
	"time"

	"go-social-api/internal/model"
)

type RevocationRepository struct {
	s *Store
}

func (r *RevocationRepository) Add(_ context.Context, entry model.RevocationEntry) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.revocations[entry.Token]; ok {
		return false, nil
	}
	r.s.revocations[entry.Token] = entry
	return true, nil
}

func (r *RevocationRepository) Contains(_ context.Context, token string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.revocations[token]
	return ok, nil
}

func (r *RevocationRepository) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var purged int64
	for token, entry := range r.s.revocations {
		if !entry.ExpiresAt.After(now) {
			delete(r.s.revocations, token)
			purged++
		}
	}
	return purged, nil
}
