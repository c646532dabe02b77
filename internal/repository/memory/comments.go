package memory

import (
	"context"
	"sort"

	"go-social-api/internal/model"
)

type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(_ context.Context, c model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[c.PostID]; !ok {
		return model.ErrPostNotFound
	}
	if c.ParentID != nil {
		if _, ok := r.s.comments[*c.ParentID]; !ok {
			return model.ErrCommentNotFound
		}
	}
	r.s.comments[c.ID] = c
	return nil
}

func (r *CommentRepository) FindByID(_ context.Context, id string) (model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return model.Comment{}, model.ErrCommentNotFound
	}
	return c, nil
}

func (r *CommentRepository) Update(_ context.Context, c model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.comments[c.ID]
	if !ok {
		return model.ErrCommentNotFound
	}
	existing.Content = c.Content
	existing.UpdatedAt = c.UpdatedAt
	r.s.comments[c.ID] = existing
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	r.s.deleteCommentLocked(id)
	return nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID string, page int, limit int) ([]model.CommentView, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	top := make([]model.CommentView, 0)
	replies := make(map[string][]model.CommentView)
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		view := model.CommentView{Comment: c, User: r.s.summaryLocked(c.UserID)}
		if c.ParentID == nil {
			top = append(top, view)
			continue
		}
		replies[*c.ParentID] = append(replies[*c.ParentID], view)
	}
	sortNewestFirst(top, func(v model.CommentView) int64 { return v.CreatedAt.UnixNano() })

	pageItems := paginate(top, page, limit)
	for i := range pageItems {
		children := replies[pageItems[i].ID]
		sort.SliceStable(children, func(a, b int) bool {
			return children[a].CreatedAt.Before(children[b].CreatedAt)
		})
		pageItems[i].Replies = children
	}
	return pageItems, len(top), nil
}

func (r *CommentRepository) ListByUser(_ context.Context, userID string, page int, limit int) ([]model.UserCommentView, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]model.UserCommentView, 0)
	for _, c := range r.s.comments {
		if c.UserID != userID {
			continue
		}
		items = append(items, model.UserCommentView{Comment: c, PostTitle: r.s.posts[c.PostID].Title})
	}
	sortNewestFirst(items, func(v model.UserCommentView) int64 { return v.CreatedAt.UnixNano() })

	return paginate(items, page, limit), len(items), nil
}
