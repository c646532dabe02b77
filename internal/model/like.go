package model

import "time"

type Like struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeToggleResult struct {
	Liked bool `json:"liked"`
}

type LikeStatus struct {
	IsLiked bool `json:"is_liked"`
}

type PostLikes struct {
	PostID     string        `json:"post_id"`
	TotalLikes int           `json:"total_likes"`
	Users      []UserSummary `json:"users"`
}
