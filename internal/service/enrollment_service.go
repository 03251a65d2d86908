package service

import (
	"context"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type EnrollmentService interface {
	// Register enrolls userID onto courseID at price. A second registration
	// for the same pair fails with ErrAlreadyRegistered.
	Register(ctx context.Context, userID, courseID string, price decimal.Decimal) (*model.Enrollment, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	users       repository.UserRepository
	publisher   pubsub.Publisher
	topic       string
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService. publisher may be nil.
func NewEnrollmentService(
	enrollments repository.EnrollmentRepository,
	courses repository.CourseRepository,
	users repository.UserRepository,
	publisher pubsub.Publisher,
	topic string,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		users:       users,
		publisher:   publisher,
		topic:       topic,
		logger:      logger.With().Str("service", "EnrollmentService").Logger(),
	}
}

func (s *enrollmentService) Register(ctx context.Context, userID, courseID string, price decimal.Decimal) (*model.Enrollment, error) {
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

	existing, err := s.enrollments.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	e := &model.Enrollment{UserID: userID, CourseID: courseID, Price: price}
	inserted, err := s.enrollments.CreateEnrollment(ctx, e)
	if err != nil {
		return nil, err
	}
	// a concurrent registration won the unique constraint
	if !inserted {
		return nil, ErrAlreadyRegistered
	}

	s.publishEnrollment(context.WithoutCancel(ctx), e)
	return e, nil
}

func (s *enrollmentService) publishEnrollment(ctx context.Context, e *model.Enrollment) {
	if s.publisher == nil {
		return
	}
	log := s.logger.With().Str("user_id", e.UserID).Str("course_id", e.CourseID).Logger()

	attrs := map[string]string{"price": e.Price.String()}
	user, err := s.users.GetUserByID(ctx, e.UserID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load user for enrollment event")
	} else if user != nil {
		attrs["email"] = user.Email
		attrs["name"] = user.Name
	}

	_, err = pubsub.PublishEvent(ctx, s.publisher, s.topic, pubsub.Event{
		Type:       pubsub.EventEnrollmentCreated,
		CourseID:   e.CourseID,
		UserID:     e.UserID,
		Attributes: attrs,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to publish enrollment event")
	}
}
