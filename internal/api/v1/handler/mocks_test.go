package handler

import (
	"context"
	"io"
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/middleware"
	"coursehub/internal/model"
	"coursehub/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockCourseService struct{ mock.Mock }

func (m *mockCourseService) CreateCourse(ctx context.Context, c *model.Course, cover io.Reader) (*model.Course, error) {
	args := m.Called(ctx, c, cover)
	course, _ := args.Get(0).(*model.Course)
	return course, args.Error(1)
}

func (m *mockCourseService) GetCoursesByCategory(ctx context.Context, href string) ([]model.Course, error) {
	args := m.Called(ctx, href)
	courses, _ := args.Get(0).([]model.Course)
	return courses, args.Error(1)
}

func (m *mockCourseService) GetCourseDetail(ctx context.Context, href, userID string) (*service.CourseDetail, error) {
	args := m.Called(ctx, href, userID)
	detail, _ := args.Get(0).(*service.CourseDetail)
	return detail, args.Error(1)
}

func (m *mockCourseService) DeleteCourse(ctx context.Context, courseID string) (*model.Course, error) {
	args := m.Called(ctx, courseID)
	course, _ := args.Get(0).(*model.Course)
	return course, args.Error(1)
}

type mockSessionService struct{ mock.Mock }

func (m *mockSessionService) CreateSession(ctx context.Context, courseID string, s *model.Session) (*model.Session, error) {
	args := m.Called(ctx, courseID, s)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

func (m *mockSessionService) GetAllSessions(ctx context.Context) ([]model.Session, error) {
	args := m.Called(ctx)
	sessions, _ := args.Get(0).([]model.Session)
	return sessions, args.Error(1)
}

func (m *mockSessionService) GetSessionInfo(ctx context.Context, courseHref, sessionID string) (*service.SessionInfo, error) {
	args := m.Called(ctx, courseHref, sessionID)
	info, _ := args.Get(0).(*service.SessionInfo)
	return info, args.Error(1)
}

func (m *mockSessionService) DeleteSession(ctx context.Context, sessionID string) (*model.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

type mockEnrollmentService struct{ mock.Mock }

func (m *mockEnrollmentService) Register(ctx context.Context, userID, courseID string, price decimal.Decimal) (*model.Enrollment, error) {
	args := m.Called(ctx, userID, courseID, price)
	e, _ := args.Get(0).(*model.Enrollment)
	return e, args.Error(1)
}

type mockDLQService struct{ mock.Mock }

func (m *mockDLQService) ProcessAndSave(ctx context.Context, req *dto.PubSubPushRequest) error {
	return m.Called(ctx, req).Error(0)
}

const testUserHeader = "X-Test-User"

// fakeAuth stands in for AuthMiddleware, taking the user id from a header.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(testUserHeader)
		if id == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), middleware.UserContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter(register func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	register(r)
	return r
}
