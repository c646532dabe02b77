package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"go-social-api/internal/model"
)

type LikeRepository struct {
	db DBTX
}

func NewLikeRepository(db DBTX) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle removes the caller's like if present, otherwise adds one, inside a
// single transaction. A concurrent insert that wins the (post_id, user_id)
// unique race leaves the post liked.
func (r *LikeRepository) Toggle(ctx context.Context, postID string, userID string) (bool, error) {
	liked := false
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return fmt.Errorf("remove like: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO likes (id, post_id, user_id, created_at) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (post_id, user_id) DO NOTHING`,
			uuid.NewString(), postID, userID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("add like: %w", err)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *LikeRepository) Count(ctx context.Context, postID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

func (r *LikeRepository) Exists(ctx context.Context, postID string, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`, postID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}

func (r *LikeRepository) ListUsers(ctx context.Context, postID string) ([]model.UserSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.username
		 FROM likes l JOIN users u ON u.id = l.user_id
		 WHERE l.post_id = $1
		 ORDER BY l.created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	users := make([]model.UserSummary, 0)
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
