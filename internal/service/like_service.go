package service

import (
	"context"

	"go-social-api/internal/model"
)

type LikeService struct {
	likes LikeStore
	posts PostStore
}

func NewLikeService(likes LikeStore, posts PostStore) *LikeService {
	return &LikeService{likes: likes, posts: posts}
}

func (s *LikeService) Toggle(ctx context.Context, userID string, postID string) (model.LikeToggleResult, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return model.LikeToggleResult{}, err
	}

	liked, err := s.likes.Toggle(ctx, postID, userID)
	if err != nil {
		return model.LikeToggleResult{}, err
	}
	return model.LikeToggleResult{Liked: liked}, nil
}

func (s *LikeService) Likes(ctx context.Context, postID string) (model.PostLikes, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return model.PostLikes{}, err
	}

	users, err := s.likes.ListUsers(ctx, postID)
	if err != nil {
		return model.PostLikes{}, err
	}
	count, err := s.likes.Count(ctx, postID)
	if err != nil {
		return model.PostLikes{}, err
	}
	return model.PostLikes{PostID: postID, TotalLikes: count, Users: users}, nil
}

func (s *LikeService) IsLiked(ctx context.Context, userID string, postID string) (model.LikeStatus, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return model.LikeStatus{}, err
	}

	liked, err := s.likes.Exists(ctx, postID, userID)
	if err != nil {
		return model.LikeStatus{}, err
	}
	return model.LikeStatus{IsLiked: liked}, nil
}
