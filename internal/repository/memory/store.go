// Package memory is a process-local store with the same contracts as the
// Postgres repositories. It backs STORE_DRIVER=memory and the end-to-end
// router tests.
package memory

import (
	"sort"
	"strings"
	"sync"

	"go-social-api/internal/model"
)

// Store holds every table behind one lock so cascading deletes stay atomic.
type Store struct {
	mu sync.RWMutex

	users       map[string]model.User
	posts       map[string]model.Post
	comments    map[string]model.Comment
	likes       map[string]model.Like
	revocations map[string]model.RevocationEntry
	audit       []model.AuditEntry
}

func New() *Store {
	return &Store{
		users:       make(map[string]model.User),
		posts:       make(map[string]model.Post),
		comments:    make(map[string]model.Comment),
		likes:       make(map[string]model.Like),
		revocations: make(map[string]model.RevocationEntry),
	}
}

func (s *Store) Users() *UserRepository             { return &UserRepository{s: s} }
func (s *Store) Revocations() *RevocationRepository { return &RevocationRepository{s: s} }
func (s *Store) Posts() *PostRepository             { return &PostRepository{s: s} }
func (s *Store) Comments() *CommentRepository       { return &CommentRepository{s: s} }
func (s *Store) Likes() *LikeRepository             { return &LikeRepository{s: s} }
func (s *Store) Audit() *AuditRepository            { return &AuditRepository{s: s} }

func likeKey(postID string, userID string) string {
	return postID + "/" + userID
}

// deletePostLocked drops a post with its comments and likes. Caller holds mu.
func (s *Store) deletePostLocked(postID string) {
	delete(s.posts, postID)
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	for key, l := range s.likes {
		if l.PostID == postID {
			delete(s.likes, key)
		}
	}
}

// deleteCommentLocked drops a comment and every reply below it. Caller holds mu.
func (s *Store) deleteCommentLocked(commentID string) {
	delete(s.comments, commentID)
	for id, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == commentID {
			s.deleteCommentLocked(id)
		}
	}
}

func (s *Store) summaryLocked(userID string) model.UserSummary {
	u := s.users[userID]
	return model.UserSummary{ID: userID, Username: u.Username, Email: u.Email}
}

func paginate[T any](items []T, page int, limit int) []T {
	page, limit = model.NormalizePage(page, limit)
	start := (page - 1) * limit
	if start >= len(items) {
		return make([]T, 0)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsFold(haystack string, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortNewestFirst[T any](items []T, at func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]) > at(items[j]) })
}
