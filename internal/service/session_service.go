package service

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type SessionService interface {
	// CreateSession attaches s to an existing course. The video is always
	// the placeholder.
	CreateSession(ctx context.Context, courseID string, s *model.Session) (*model.Session, error)
	GetAllSessions(ctx context.Context) ([]model.Session, error)
	GetSessionInfo(ctx context.Context, courseHref, sessionID string) (*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) (*model.Session, error)
}

// SessionInfo is a session together with every session of its course.
type SessionInfo struct {
	Session  *model.Session
	Sessions []model.Session
}

type sessionService struct {
	sessions repository.SessionRepository
	courses  repository.CourseRepository
	logger   zerolog.Logger
}

func NewSessionService(sessions repository.SessionRepository, courses repository.CourseRepository, logger zerolog.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		courses:  courses,
		logger:   logger.With().Str("service", "SessionService").Logger(),
	}
}

func (s *sessionService) CreateSession(ctx context.Context, courseID string, session *model.Session) (*model.Session, error) {
	if _, err := uuid.Parse(courseID); err != nil {
		return nil, ErrCourseNotFound
	}
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	session.CourseID = course.CourseID
	session.Video = model.PlaceholderVideo
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info().Str("course_id", course.CourseID).Str("session_id", session.SessionID).Msg("session created")
	return session, nil
}

func (s *sessionService) GetAllSessions(ctx context.Context) ([]model.Session, error) {
	sessions, err := s.sessions.GetAllSessions(ctx)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	return sessions, nil
}

func (s *sessionService) GetSessionInfo(ctx context.Context, courseHref, sessionID string) (*SessionInfo, error) {
	course, err := s.courses.GetCourseByHref(ctx, courseHref)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.CourseID != course.CourseID {
		return nil, ErrSessionNotFound
	}

	siblings, err := s.sessions.GetSessionsByCourseID(ctx, course.CourseID)
	if err != nil {
		return nil, err
	}
	if siblings == nil {
		siblings = []model.Session{}
	}
	return &SessionInfo{Session: session, Sessions: siblings}, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrSessionNotFound
	}
	deleted, err := s.sessions.DeleteSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrSessionNotFound
	}
	return deleted, nil
}
