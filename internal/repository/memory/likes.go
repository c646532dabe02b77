package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"go-social-api/internal/model"
)

type LikeRepository struct {
	s *Store
}

func (r *LikeRepository) Toggle(_ context.Context, postID string, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return false, model.ErrPostNotFound
	}

	key := likeKey(postID, userID)
	if _, ok := r.s.likes[key]; ok {
		delete(r.s.likes, key)
		return false, nil
	}
	r.s.likes[key] = model.Like{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return true, nil
}

func (r *LikeRepository) Count(_ context.Context, postID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, l := range r.s.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *LikeRepository) Exists(_ context.Context, postID string, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.likes[likeKey(postID, userID)]
	return ok, nil
}

func (r *LikeRepository) ListUsers(_ context.Context, postID string) ([]model.UserSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	likes := make([]model.Like, 0)
	for _, l := range r.s.likes {
		if l.PostID == postID {
			likes = append(likes, l)
		}
	}
	sort.SliceStable(likes, func(i, j int) bool { return likes[i].CreatedAt.Before(likes[j].CreatedAt) })

	users := make([]model.UserSummary, 0, len(likes))
	for _, l := range likes {
		summary := r.s.summaryLocked(l.UserID)
		summary.Email = ""
		users = append(users, summary)
	}
	return users, nil
}
