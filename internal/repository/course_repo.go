package repository

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	CreateCourse(ctx context.Context, c *model.Course) error
	// GetCourseByID retrieves a course by its ID with its creator populated
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	// GetCourseByHref retrieves the oldest course with the given href, with
	// creator and category populated
	GetCourseByHref(ctx context.Context, href string) (*model.Course, error)
	GetCoursesByCategoryID(ctx context.Context, categoryID string) ([]model.Course, error)
	// DeleteCourse deletes a course and returns the removed row, or nil if
	// nothing matched. Sessions, enrollments and comments cascade.
	DeleteCourse(ctx context.Context, courseID string) (*model.Course, error)
}

type courseRepo struct {
	pool *pgxpool.Pool
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(pool *pgxpool.Pool) CourseRepository {
	return &courseRepo{pool: pool}
}

// CreateCourse inserts a new course and fills in the generated fields
func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses AS c (name, description, creator_id, category_id, status, price, href, discount, support, cover)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + courseColumns
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.Description, c.CreatorID, c.CategoryID, c.Status, c.Price, c.Href, c.Discount, c.Support, c.Cover,
	).Scan(courseFields(c)...)
	if err != nil {
		return fmt.Errorf("creating course: %w", err)
	}
	return nil
}

func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `
		SELECT ` + courseColumns + `, ` + userColumns + `
		FROM courses c
		JOIN users u ON u.id = c.creator_id
		WHERE c.id = $1
	`
	var c model.Course
	var creator model.User
	err := r.pool.QueryRow(ctx, query, courseID).Scan(concat(courseFields(&c), userFields(&creator))...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting course by id %s: %w", courseID, err)
	}
	c.Creator = &creator
	return &c, nil
}

func (r *courseRepo) GetCourseByHref(ctx context.Context, href string) (*model.Course, error) {
	query := `
		SELECT ` + courseColumns + `, ` + userColumns + `, ` + categoryColumns + `
		FROM courses c
		JOIN users u ON u.id = c.creator_id
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.href = $1
		ORDER BY c.created_at ASC
		LIMIT 1
	`
	var c model.Course
	var creator model.User
	var category model.Category
	err := r.pool.QueryRow(ctx, query, href).
		Scan(concat(courseFields(&c), userFields(&creator), categoryFields(&category))...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting course by href %s: %w", href, err)
	}
	c.Creator = &creator
	c.Category = &category
	return &c, nil
}

// GetCoursesByCategoryID returns every course of a category, newest first
func (r *courseRepo) GetCoursesByCategoryID(ctx context.Context, categoryID string) ([]model.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses c
		WHERE c.category_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("querying courses for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(courseFields(&c)...); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course rows: %w", err)
	}
	return courses, nil
}

func (r *courseRepo) DeleteCourse(ctx context.Context, courseID string) (*model.Course, error) {
	query := `DELETE FROM courses c WHERE c.id = $1 RETURNING ` + courseColumns
	var c model.Course
	if err := r.pool.QueryRow(ctx, query, courseID).Scan(courseFields(&c)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("deleting course %s: %w", courseID, err)
	}
	return &c, nil
}
