package repository

import (
	"context"
	"fmt"

	"coursehub/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository interface {
	// GetAcceptedCommentsByCourseID returns accepted comments with the
	// commenting user populated, newest first
	GetAcceptedCommentsByCourseID(ctx context.Context, courseID string) ([]model.Comment, error)
}

type commentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) CommentRepository {
	return &commentRepo{pool: pool}
}

func (r *commentRepo) GetAcceptedCommentsByCourseID(ctx context.Context, courseID string) ([]model.Comment, error) {
	query := `
		SELECT cm.id, cm.body, cm.course_id, cm.user_id, cm.score, cm.is_accept, cm.created_at, ` + userColumns + `
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.course_id = $1 AND cm.is_accept = TRUE
		ORDER BY cm.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying comments for course %s: %w", courseID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var cm model.Comment
		var u model.User
		dest := concat(
			[]any{&cm.CommentID, &cm.Body, &cm.CourseID, &cm.UserID, &cm.Score, &cm.IsAccept, &cm.CreatedAt},
			userFields(&u),
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		cm.User = &u
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comment rows: %w", err)
	}
	return comments, nil
}
