package model

import "time"

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostQuery struct {
	Search string
	UserID string
	Page   int
	Limit  int
}

type PostListData struct {
	Items []Post `json:"items"`
}
