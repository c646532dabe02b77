package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"go-social-api/internal/model"
	"go-social-api/internal/util"
	"go-social-api/internal/validation"
)

type CommentService struct {
	comments CommentStore
	posts    PostStore
	now      Clock
}

func NewCommentService(comments CommentStore, posts PostStore) *CommentService {
	return &CommentService{comments: comments, posts: posts, now: utcNow}
}

// Create adds a comment, or a reply when ParentID is set. The parent must
// belong to the same post. Threads are one level deep: replying to a reply
// attaches the new comment to that reply's top-level comment.
func (s *CommentService) Create(ctx context.Context, userID string, req model.CreateCommentRequest) (model.Comment, error) {
	req.Content = util.SanitizeText(req.Content)
	if err := validation.Struct(req); err != nil {
		return model.Comment{}, err
	}

	if _, err := s.posts.FindByID(ctx, req.PostID); err != nil {
		return model.Comment{}, err
	}

	if req.ParentID != nil {
		parent, err := s.comments.FindByID(ctx, *req.ParentID)
		if err != nil {
			return model.Comment{}, err
		}
		if parent.PostID != req.PostID {
			return model.Comment{}, fmt.Errorf("%w: parent comment belongs to another post", model.ErrInvalidInput)
		}
		if parent.ParentID != nil {
			req.ParentID = parent.ParentID
		}
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		PostID:    req.PostID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		CreatedAt: s.now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string, page int, limit int) ([]model.CommentView, model.Meta, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, model.Meta{}, err
	}

	page, limit = model.NormalizePage(page, limit)
	items, total, err := s.comments.ListByPost(ctx, postID, page, limit)
	if err != nil {
		return nil, model.Meta{}, err
	}
	return items, model.NewMeta(page, limit, total), nil
}

// ListByUser only lets callers read their own comment history.
func (s *CommentService) ListByUser(ctx context.Context, callerID string, userID string, page int, limit int) ([]model.UserCommentView, model.Meta, error) {
	if callerID != userID {
		return nil, model.Meta{}, model.ErrForbidden
	}

	page, limit = model.NormalizePage(page, limit)
	items, total, err := s.comments.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, model.Meta{}, err
	}
	return items, model.NewMeta(page, limit, total), nil
}

func (s *CommentService) Update(ctx context.Context, userID string, commentID string, req model.UpdateCommentRequest) (model.Comment, error) {
	req.Content = util.SanitizeText(req.Content)
	if err := validation.Struct(req); err != nil {
		return model.Comment{}, err
	}

	comment, err := s.owned(ctx, userID, commentID)
	if err != nil {
		return model.Comment{}, err
	}

	now := s.now()
	comment.Content = req.Content
	comment.UpdatedAt = &now
	if err := s.comments.Update(ctx, comment); err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, userID string, commentID string) error {
	if _, err := s.owned(ctx, userID, commentID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) owned(ctx context.Context, userID string, commentID string) (model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if comment.UserID != userID {
		return model.Comment{}, model.ErrForbidden
	}
	return comment, nil
}
