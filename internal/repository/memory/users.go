package memory

import (
	"context"
	"strings"

	"go-social-api/internal/model"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.TrimSpace(email)
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (r *UserRepository) ExistsByUsernameOrEmail(_ context.Context, username string, email string, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.conflictLocked(username, email, excludeID), nil
}

func (s *Store) conflictLocked(username string, email string, excludeID string) bool {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	for id, u := range s.users {
		if id == excludeID {
			continue
		}
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, u model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; ok || r.s.conflictLocked(u.Username, u.Email, "") {
		return model.ErrUserAlreadyExists
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *UserRepository) Update(_ context.Context, u model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	if r.s.conflictLocked(u.Username, u.Email, u.ID) {
		return model.ErrUserAlreadyExists
	}
	r.s.users[u.ID] = u
	return nil
}

// Delete cascades to the user's posts, comments and likes.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(r.s.users, id)

	for postID, p := range r.s.posts {
		if p.UserID == id {
			r.s.deletePostLocked(postID)
		}
	}
	for commentID, c := range r.s.comments {
		if c.UserID == id {
			r.s.deleteCommentLocked(commentID)
		}
	}
	for key, l := range r.s.likes {
		if l.UserID == id {
			delete(r.s.likes, key)
		}
	}
	return nil
}
