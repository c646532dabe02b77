package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"go-social-api/internal/model"
)

type CommentRepository struct {
	db DBTX
}

func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c model.Comment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO comments (id, post_id, user_id, parent_id, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.PostID, c.UserID, c.ParentID, c.Content, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (model.Comment, error) {
	var c model.Comment
	err := r.db.QueryRow(ctx,
		`SELECT id, post_id, user_id, parent_id, content, created_at, updated_at
		 FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.PostID, &c.UserID, &c.ParentID, &c.Content, &c.CreatedAt, &c.UpdatedAt)

	if isNoRow(err) {
		return model.Comment{}, model.ErrCommentNotFound
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

func (r *CommentRepository) Update(ctx context.Context, c model.Comment) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`,
		c.ID, c.Content, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

// Delete removes the comment and, through the parent_id foreign key, its
// replies.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

// ListByPost pages over top-level comments, newest first, and attaches every
// reply of the returned page oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string, page int, limit int) ([]model.CommentView, int, error) {
	page, limit = model.NormalizePage(page, limit)

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = $1 AND parent_id IS NULL`, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.post_id, c.user_id, c.parent_id, c.content, c.created_at, c.updated_at,
		        u.username, u.email
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = $1 AND c.parent_id IS NULL
		 ORDER BY c.created_at DESC
		 LIMIT $2 OFFSET $3`, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	comments, err := collectCommentViews(rows)
	if err != nil {
		return nil, 0, err
	}
	if len(comments) == 0 {
		return comments, total, nil
	}

	parentIDs := make([]string, 0, len(comments))
	byID := make(map[string]int, len(comments))
	for i, c := range comments {
		parentIDs = append(parentIDs, c.ID)
		byID[c.ID] = i
	}

	replyRows, err := r.db.Query(ctx,
		`SELECT c.id, c.post_id, c.user_id, c.parent_id, c.content, c.created_at, c.updated_at,
		        u.username, u.email
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.parent_id = ANY($1)
		 ORDER BY c.created_at ASC`, parentIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("list replies: %w", err)
	}
	replies, err := collectCommentViews(replyRows)
	if err != nil {
		return nil, 0, err
	}
	for _, reply := range replies {
		if reply.ParentID == nil {
			continue
		}
		if idx, ok := byID[*reply.ParentID]; ok {
			comments[idx].Replies = append(comments[idx].Replies, reply)
		}
	}

	return comments, total, nil
}

func (r *CommentRepository) ListByUser(ctx context.Context, userID string, page int, limit int) ([]model.UserCommentView, int, error) {
	page, limit = model.NormalizePage(page, limit)

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count user comments: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.post_id, c.user_id, c.parent_id, c.content, c.created_at, c.updated_at, p.title
		 FROM comments c JOIN posts p ON p.id = c.post_id
		 WHERE c.user_id = $1
		 ORDER BY c.created_at DESC
		 LIMIT $2 OFFSET $3`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list user comments: %w", err)
	}
	defer rows.Close()

	items := make([]model.UserCommentView, 0)
	for rows.Next() {
		var v model.UserCommentView
		if err := rows.Scan(&v.ID, &v.PostID, &v.UserID, &v.ParentID, &v.Content,
			&v.CreatedAt, &v.UpdatedAt, &v.PostTitle); err != nil {
			return nil, 0, fmt.Errorf("scan user comment: %w", err)
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func collectCommentViews(rows pgx.Rows) ([]model.CommentView, error) {
	defer rows.Close()

	items := make([]model.CommentView, 0)
	for rows.Next() {
		var v model.CommentView
		if err := rows.Scan(&v.ID, &v.PostID, &v.UserID, &v.ParentID, &v.Content,
			&v.CreatedAt, &v.UpdatedAt, &v.User.Username, &v.User.Email); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		v.User.ID = v.UserID
		items = append(items, v)
	}
	return items, rows.Err()
}
