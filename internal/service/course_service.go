package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"
	"coursehub/internal/storage"
	"coursehub/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const maxHrefLen = 100

// CourseService defines the interface for course operations
type CourseService interface {
	// CreateCourse stores the cover and persists c, returning it re-read with
	// its creator populated
	CreateCourse(ctx context.Context, c *model.Course, cover io.Reader) (*model.Course, error)
	// GetCoursesByCategory returns the courses of a category. An unknown
	// category yields an empty slice.
	GetCoursesByCategory(ctx context.Context, categoryHref string) ([]model.Course, error)
	GetCourseDetail(ctx context.Context, href, userID string) (*CourseDetail, error)
	// DeleteCourse deletes a course by its ID and returns the removed record
	DeleteCourse(ctx context.Context, courseID string) (*model.Course, error)
}

// CourseDetail aggregates everything the course page shows.
type CourseDetail struct {
	Course              *model.Course
	Sessions            []model.Session
	Comments            []model.Comment
	CourseStudentsCount int
	IsUserRegistered    bool
}

// CourseDeps groups the collaborators of CourseService. Queue and Publisher
// are optional.
type CourseDeps struct {
	Courses     repository.CourseRepository
	Categories  repository.CategoryRepository
	Sessions    repository.SessionRepository
	Comments    repository.CommentRepository
	Enrollments repository.EnrollmentRepository
	Covers      storage.ObjectStore
	Queue       JobQueue
	Publisher   pubsub.Publisher

	CleanupQueue string
	CourseTopic  string
}

type courseService struct {
	deps   CourseDeps
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(deps CourseDeps, logger zerolog.Logger) CourseService {
	return &courseService{
		deps:   deps,
		logger: logger.With().Str("service", "CourseService").Logger(),
	}
}

func (s *courseService) CreateCourse(ctx context.Context, c *model.Course, cover io.Reader) (*model.Course, error) {
	if cover == nil {
		return nil, ErrCoverRequired
	}

	category, err := s.deps.Categories.GetCategoryByID(ctx, c.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	c.Href = strings.TrimSpace(c.Href)
	if c.Href == "" {
		href, err := s.deriveHref(ctx, c.Name)
		if err != nil {
			return nil, err
		}
		c.Href = href
	}
	if c.Status == "" {
		c.Status = model.CourseStatusStart
	}

	data, err := storage.NormalizeCover(cover)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrCoverTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCover, err)
		}
		return nil, err
	}

	key := storage.NewCoverKey()
	if err := s.deps.Covers.Put(ctx, key, data, storage.CoverContentType); err != nil {
		return nil, err
	}
	c.Cover = key

	if err := s.deps.Courses.CreateCourse(ctx, c); err != nil {
		if delErr := s.deps.Covers.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("cover_key", key).Msg("failed to remove orphaned cover")
		}
		return nil, err
	}

	created, err := s.deps.Courses.GetCourseByID(ctx, c.CourseID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return c, nil
	}
	return created, nil
}

// deriveHref slugs name and adds a short suffix when another course already
// uses the slug.
func (s *courseService) deriveHref(ctx context.Context, name string) (string, error) {
	href := util.Slugify(name, maxHrefLen)
	existing, err := s.deps.Courses.GetCourseByHref(ctx, href)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return href, nil
	}
	suffix := "-" + util.ShortID()
	runes := []rune(href)
	if len(runes)+len(suffix) > maxHrefLen {
		href = strings.TrimRight(string(runes[:maxHrefLen-len(suffix)]), "-")
	}
	return href + suffix, nil
}

func (s *courseService) GetCoursesByCategory(ctx context.Context, categoryHref string) ([]model.Course, error) {
	category, err := s.deps.Categories.GetCategoryByHref(ctx, categoryHref)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return []model.Course{}, nil
	}
	courses, err := s.deps.Courses.GetCoursesByCategoryID(ctx, category.CategoryID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (s *courseService) GetCourseDetail(ctx context.Context, href, userID string) (*CourseDetail, error) {
	course, err := s.deps.Courses.GetCourseByHref(ctx, href)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	detail := &CourseDetail{Course: course}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sessions, err := s.deps.Sessions.GetSessionsByCourseID(gctx, course.CourseID)
		detail.Sessions = sessions
		return err
	})
	g.Go(func() error {
		comments, err := s.deps.Comments.GetAcceptedCommentsByCourseID(gctx, course.CourseID)
		detail.Comments = comments
		return err
	})
	g.Go(func() error {
		count, err := s.deps.Enrollments.CountByCourseID(gctx, course.CourseID)
		detail.CourseStudentsCount = count
		return err
	})
	g.Go(func() error {
		if _, err := uuid.Parse(userID); err != nil {
			return nil
		}
		e, err := s.deps.Enrollments.GetEnrollment(gctx, userID, course.CourseID)
		detail.IsUserRegistered = e != nil
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if detail.Sessions == nil {
		detail.Sessions = []model.Session{}
	}
	if detail.Comments == nil {
		detail.Comments = []model.Comment{}
	}
	return detail, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID string) (*model.Course, error) {
	if _, err := uuid.Parse(courseID); err != nil {
		return nil, ErrInvalidCourseID
	}

	deleted, err := s.deps.Courses.DeleteCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, ErrCourseNotFound
	}

	s.afterDelete(context.WithoutCancel(ctx), deleted)
	return deleted, nil
}

// afterDelete schedules cover removal and announces the deletion. Failures
// are logged only.
func (s *courseService) afterDelete(ctx context.Context, c *model.Course) {
	log := s.logger.With().Str("course_id", c.CourseID).Logger()

	if s.deps.Queue != nil && c.Cover != "" {
		payload, err := json.Marshal(model.CoverCleanupJob{CourseID: c.CourseID, CoverKey: c.Cover})
		if err == nil {
			_, err = s.deps.Queue.Send(ctx, s.deps.CleanupQueue, payload)
		}
		if err != nil {
			log.Error().Err(err).Str("cover_key", c.Cover).Msg("failed to enqueue cover cleanup")
		}
	}

	if s.deps.Publisher != nil {
		_, err := pubsub.PublishEvent(ctx, s.deps.Publisher, s.deps.CourseTopic, pubsub.Event{
			Type:       pubsub.EventCourseDeleted,
			CourseID:   c.CourseID,
			Attributes: map[string]string{"href": c.Href},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to publish course deleted event")
		}
	}
}
