package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"coursehub/internal/model"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type fakeCourseRepo struct {
	mu        sync.Mutex
	courses   []model.Course
	createErr error
	deleteErr error
	deletes   int
}

func (r *fakeCourseRepo) CreateCourse(_ context.Context, c *model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	c.CourseID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.courses = append(r.courses, *c)
	return nil
}

func (r *fakeCourseRepo) GetCourseByID(_ context.Context, id string) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.CourseID == id {
			c.Creator = &model.User{UserID: c.CreatorID}
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) GetCourseByHref(_ context.Context, href string) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Href == href {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCourseRepo) GetCoursesByCategoryID(_ context.Context, categoryID string) ([]model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Course{}
	for _, c := range r.courses {
		if c.CategoryID == categoryID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) DeleteCourse(_ context.Context, id string) (*model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	if r.deleteErr != nil {
		return nil, r.deleteErr
	}
	for i, c := range r.courses {
		if c.CourseID == id {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			return &c, nil
		}
	}
	return nil, nil
}

type fakeCategoryRepo struct {
	categories []model.Category
}

func (r *fakeCategoryRepo) GetCategoryByHref(_ context.Context, href string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Href == href {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetCategoryByID(_ context.Context, id string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.CategoryID == id {
			return &c, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []model.Session
}

func (r *fakeSessionRepo) CreateSession(_ context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.SessionID = uuid.NewString()
	s.CreatedAt = time.Now()
	r.sessions = append(r.sessions, *s)
	return nil
}

func (r *fakeSessionRepo) GetSessionByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.SessionID == id {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) GetSessionsByCourseID(_ context.Context, courseID string) ([]model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Session
	for _, s := range r.sessions {
		if s.CourseID == courseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) GetAllSessions(_ context.Context) ([]model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Session(nil), r.sessions...), nil
}

func (r *fakeSessionRepo) DeleteSession(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.SessionID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return &s, nil
		}
	}
	return nil, nil
}

type fakeCommentRepo struct {
	comments []model.Comment
}

func (r *fakeCommentRepo) GetAcceptedCommentsByCourseID(_ context.Context, courseID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.comments {
		if c.CourseID == courseID && c.IsAccept {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeEnrollmentRepo enforces the (user, course) uniqueness the database
// constraint provides.
type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments []model.Enrollment
	// checkDelay widens the window between the existence check and the insert.
	checkDelay time.Duration
}

func (r *fakeEnrollmentRepo) CreateEnrollment(_ context.Context, e *model.Enrollment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.enrollments {
		if x.UserID == e.UserID && x.CourseID == e.CourseID {
			return false, nil
		}
	}
	e.EnrollmentID = uuid.NewString()
	e.CreatedAt = time.Now()
	r.enrollments = append(r.enrollments, *e)
	return true, nil
}

func (r *fakeEnrollmentRepo) GetEnrollment(_ context.Context, userID, courseID string) (*model.Enrollment, error) {
	if r.checkDelay > 0 {
		time.Sleep(r.checkDelay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.enrollments {
		if x.UserID == userID && x.CourseID == courseID {
			return &x, nil
		}
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) CountByCourseID(_ context.Context, courseID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.enrollments {
		if x.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (r *fakeEnrollmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.enrollments)
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	return r.users[id], nil
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (s *fakeObjectStore) Put(_ context.Context, key string, body []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = body
	return nil
}

func (s *fakeObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

type sentJob struct {
	queue   string
	payload []byte
}

type fakeQueue struct {
	mu   sync.Mutex
	sent []sentJob
	err  error
}

func (q *fakeQueue) Send(_ context.Context, queue string, payload []byte) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return 0, q.err
	}
	q.sent = append(q.sent, sentJob{queue: queue, payload: payload})
	return int64(len(q.sent)), nil
}

type published struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.messages = append(p.messages, published{topic: topic, payload: payload})
	return "id", nil
}

type fakeDLQRepo struct {
	saved []*model.DeadLetterMessage
}

func (r *fakeDLQRepo) Create(_ context.Context, m *model.DeadLetterMessage) error {
	m.ID = uuid.NewString()
	r.saved = append(r.saved, m)
	return nil
}

type fakeSecrets struct {
	values map[string]string
}

func (f *fakeSecrets) AccessSecret(_ context.Context, name string) (string, error) {
	v, ok := f.values[name]
	if !ok {
		return "", errBoom
	}
	return v, nil
}
