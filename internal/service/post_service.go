package service

import (
	"context"

	"github.com/google/uuid"

	"go-social-api/internal/model"
	"go-social-api/internal/util"
	"go-social-api/internal/validation"
)

type PostService struct {
	posts PostStore
	now   Clock
}

func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts, now: utcNow}
}

func (s *PostService) Create(ctx context.Context, userID string, req model.CreatePostRequest) (model.Post, error) {
	req.Title = util.SanitizeLine(req.Title)
	req.Content = util.SanitizeText(req.Content)
	if err := validation.Struct(req); err != nil {
		return model.Post{}, err
	}

	now := s.now()
	post := model.Post{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, postID string) (model.Post, error) {
	return s.posts.FindByID(ctx, postID)
}

func (s *PostService) List(ctx context.Context, query model.PostQuery) ([]model.Post, model.Meta, error) {
	query.Page, query.Limit = model.NormalizePage(query.Page, query.Limit)

	posts, total, err := s.posts.List(ctx, query)
	if err != nil {
		return nil, model.Meta{}, err
	}
	return posts, model.NewMeta(query.Page, query.Limit, total), nil
}

func (s *PostService) Update(ctx context.Context, userID string, postID string, req model.UpdatePostRequest) (model.Post, error) {
	if req.Title != nil {
		title := util.SanitizeLine(*req.Title)
		req.Title = &title
	}
	if req.Content != nil {
		content := util.SanitizeText(*req.Content)
		req.Content = &content
	}
	if err := validation.Struct(req); err != nil {
		return model.Post{}, err
	}

	post, err := s.owned(ctx, userID, postID)
	if err != nil {
		return model.Post{}, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	post.UpdatedAt = s.now()

	if err := s.posts.Update(ctx, post); err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, userID string, postID string) error {
	if _, err := s.owned(ctx, userID, postID); err != nil {
		return err
	}
	return s.posts.Delete(ctx, postID)
}

func (s *PostService) owned(ctx context.Context, userID string, postID string) (model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}
	if post.UserID != userID {
		return model.Post{}, model.ErrForbidden
	}
	return post, nil
}
