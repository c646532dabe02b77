package service

import (
	"context"
	"time"

	"go-social-api/internal/model"
)

// The store interfaces below are satisfied by the pgx repositories in
// internal/repository and by the in-memory store in internal/repository/memory.

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string, excludeID string) (bool, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id string) error
}

type RevocationStore interface {
	Add(ctx context.Context, entry model.RevocationEntry) (bool, error)
	Contains(ctx context.Context, token string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type PostStore interface {
	Create(ctx context.Context, p model.Post) error
	FindByID(ctx context.Context, id string) (model.Post, error)
	Update(ctx context.Context, p model.Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query model.PostQuery) ([]model.Post, int, error)
}

type CommentStore interface {
	Create(ctx context.Context, c model.Comment) error
	FindByID(ctx context.Context, id string) (model.Comment, error)
	Update(ctx context.Context, c model.Comment) error
	Delete(ctx context.Context, id string) error
	ListByPost(ctx context.Context, postID string, page int, limit int) ([]model.CommentView, int, error)
	ListByUser(ctx context.Context, userID string, page int, limit int) ([]model.UserCommentView, int, error)
}

type LikeStore interface {
	Toggle(ctx context.Context, postID string, userID string) (bool, error)
	Count(ctx context.Context, postID string) (int, error)
	Exists(ctx context.Context, postID string, userID string) (bool, error)
	ListUsers(ctx context.Context, postID string) ([]model.UserSummary, error)
}

type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	Query(ctx context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error)
}

// Clock returns the current time. Services default to time.Now in UTC.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
