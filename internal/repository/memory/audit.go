package memory

import (
	"context"
	"strings"

	"go-social-api/internal/model"
)

type AuditRepository struct {
	s *Store
}

func (r *AuditRepository) Log(_ context.Context, entry model.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.audit = append(r.s.audit, entry)
	return nil
}

func (r *AuditRepository) Query(_ context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	page, limit := model.NormalizePage(query.Page, query.Limit)
	userID := strings.TrimSpace(query.UserID)
	action := strings.TrimSpace(query.Action)

	matched := make([]model.AuditEntry, 0)
	for _, e := range r.s.audit {
		if userID != "" && e.UserID != userID {
			continue
		}
		if action != "" && !strings.EqualFold(e.Action, action) {
			continue
		}
		matched = append(matched, e)
	}
	sortNewestFirst(matched, func(e model.AuditEntry) int64 { return e.OccurredAt.UnixNano() })

	return paginate(matched, page, limit), model.NewMeta(page, limit, len(matched)), nil
}
