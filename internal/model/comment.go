package model

import "time"

type Comment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id"`
	UserID    string     `json:"user_id"`
	ParentID  *string    `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CommentView is a comment joined with its author; replies are only
// populated for top-level comments.
type CommentView struct {
	Comment
	User    UserSummary   `json:"user"`
	Replies []CommentView `json:"replies,omitempty"`
}

// UserCommentView is a comment joined with the post it belongs to.
type UserCommentView struct {
	Comment
	PostTitle string `json:"post_title"`
}

type CommentListData struct {
	Items []CommentView `json:"items"`
}

type UserCommentListData struct {
	Items []UserCommentView `json:"items"`
}
