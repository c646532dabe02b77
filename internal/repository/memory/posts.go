package memory

import (
	"context"
	"strings"

	"go-social-api/internal/model"
)

type PostRepository struct {
	s *Store
}

func (r *PostRepository) Create(_ context.Context, p model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[p.UserID]; !ok {
		return model.ErrUserNotFound
	}
	r.s.posts[p.ID] = p
	return nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return model.Post{}, model.ErrPostNotFound
	}
	return p, nil
}

func (r *PostRepository) Update(_ context.Context, p model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.posts[p.ID]
	if !ok {
		return model.ErrPostNotFound
	}
	existing.Title = p.Title
	existing.Content = p.Content
	existing.UpdatedAt = p.UpdatedAt
	r.s.posts[p.ID] = existing
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	r.s.deletePostLocked(id)
	return nil
}

func (r *PostRepository) List(_ context.Context, query model.PostQuery) ([]model.Post, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.TrimSpace(query.Search)
	userID := strings.TrimSpace(query.UserID)

	matched := make([]model.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		if userID != "" && p.UserID != userID {
			continue
		}
		if search != "" && !containsFold(p.Title, search) && !containsFold(p.Content, search) {
			continue
		}
		matched = append(matched, p)
	}
	sortNewestFirst(matched, func(p model.Post) int64 { return p.CreatedAt.UnixNano() })

	return paginate(matched, query.Page, query.Limit), len(matched), nil
}
