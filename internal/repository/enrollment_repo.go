package repository

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnrollmentRepository defines the interface for the course_users relation
type EnrollmentRepository interface {
	// CreateEnrollment inserts e unless the (user, course) pair already
	// exists. It reports whether a row was inserted.
	CreateEnrollment(ctx context.Context, e *model.Enrollment) (bool, error)
	GetEnrollment(ctx context.Context, userID, courseID string) (*model.Enrollment, error)
	CountByCourseID(ctx context.Context, courseID string) (int, error)
}

type enrollmentRepo struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepo creates a new EnrollmentRepository
func NewEnrollmentRepo(pool *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepo{pool: pool}
}

func (r *enrollmentRepo) CreateEnrollment(ctx context.Context, e *model.Enrollment) (bool, error) {
	query := `
		INSERT INTO course_users (user_id, course_id, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_id) DO NOTHING
		RETURNING id, user_id, course_id, price, created_at
	`
	err := r.pool.QueryRow(ctx, query, e.UserID, e.CourseID, e.Price).
		Scan(&e.EnrollmentID, &e.UserID, &e.CourseID, &e.Price, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("creating enrollment of user %s in course %s: %w", e.UserID, e.CourseID, err)
	}
	return true, nil
}

func (r *enrollmentRepo) GetEnrollment(ctx context.Context, userID, courseID string) (*model.Enrollment, error) {
	query := `
		SELECT id, user_id, course_id, price, created_at
		FROM course_users
		WHERE user_id = $1 AND course_id = $2
	`
	var e model.Enrollment
	err := r.pool.QueryRow(ctx, query, userID, courseID).
		Scan(&e.EnrollmentID, &e.UserID, &e.CourseID, &e.Price, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting enrollment of user %s in course %s: %w", userID, courseID, err)
	}
	return &e, nil
}

func (r *enrollmentRepo) CountByCourseID(ctx context.Context, courseID string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM course_users WHERE course_id = $1`, courseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting enrollments for course %s: %w", courseID, err)
	}
	return n, nil
}
