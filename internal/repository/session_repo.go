package repository

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository defines the interface for interacting with session data
type SessionRepository interface {
	CreateSession(ctx context.Context, s *model.Session) error
	GetSessionByID(ctx context.Context, sessionID string) (*model.Session, error)
	GetSessionsByCourseID(ctx context.Context, courseID string) ([]model.Session, error)
	// GetAllSessions returns every session with its course populated
	GetAllSessions(ctx context.Context) ([]model.Session, error)
	// DeleteSession returns the removed row, or nil if nothing matched
	DeleteSession(ctx context.Context, sessionID string) (*model.Session, error)
}

type sessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepo creates a new SessionRepository
func NewSessionRepo(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepo{pool: pool}
}

func (r *sessionRepo) CreateSession(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO sessions AS s (title, time, free, video, course_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + sessionColumns
	if err := r.pool.QueryRow(ctx, query, s.Title, s.Time, s.Free, s.Video, s.CourseID).Scan(sessionFields(s)...); err != nil {
		return fmt.Errorf("creating session for course %s: %w", s.CourseID, err)
	}
	return nil
}

func (r *sessionRepo) GetSessionByID(ctx context.Context, sessionID string) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions s WHERE s.id = $1`
	var s model.Session
	if err := r.pool.QueryRow(ctx, query, sessionID).Scan(sessionFields(&s)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting session by id %s: %w", sessionID, err)
	}
	return &s, nil
}

func (r *sessionRepo) GetSessionsByCourseID(ctx context.Context, courseID string) ([]model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		WHERE s.course_id = $1
		ORDER BY s.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions for course %s: %w", courseID, err)
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(sessionFields(&s)...); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepo) GetAllSessions(ctx context.Context) ([]model.Session, error) {
	query := `
		SELECT ` + sessionColumns + `, ` + courseColumns + `
		FROM sessions s
		JOIN courses c ON c.id = s.course_id
		ORDER BY s.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		var s model.Session
		var c model.Course
		if err := rows.Scan(concat(sessionFields(&s), courseFields(&c))...); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		s.Course = &c
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}
	return sessions, nil
}

func (r *sessionRepo) DeleteSession(ctx context.Context, sessionID string) (*model.Session, error) {
	query := `DELETE FROM sessions s WHERE s.id = $1 RETURNING ` + sessionColumns
	var s model.Session
	if err := r.pool.QueryRow(ctx, query, sessionID).Scan(sessionFields(&s)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("deleting session %s: %w", sessionID, err)
	}
	return &s, nil
}
