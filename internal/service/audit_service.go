package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"go-social-api/internal/event"
	"go-social-api/internal/model"
)

// AuditService keeps the session activity trail. Entries arrive through the
// event bus and are written by Consume.
type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) Record(ctx context.Context, e event.Event) error {
	if s == nil {
		return nil
	}

	entry := model.AuditEntry{
		ID:         e.ID,
		Action:     string(e.Type),
		UserID:     e.ActorID,
		Status:     e.Status,
		Detail:     e.Detail,
		OccurredAt: e.Timestamp.UTC(),
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = event.StatusSuccess
	}
	return s.store.Log(ctx, entry)
}

// Consume records events until ctx is cancelled or the channel closes.
// Write failures are logged and do not stop the loop.
func (s *AuditService) Consume(ctx context.Context, events <-chan event.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := s.Record(ctx, e); err != nil {
				slog.Error("audit write failed", "type", e.Type, "error", err)
			}
		}
	}
}

func (s *AuditService) Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	query.Page, query.Limit = model.NormalizePage(query.Page, query.Limit)
	query.Action = strings.ToLower(strings.TrimSpace(query.Action))
	return s.store.Query(ctx, query)
}
