package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/model"
	"coursehub/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEnrollmentRouter(svc service.EnrollmentService) http.Handler {
	h := NewEnrollmentHandler(svc, dto.NewValidator(), zerolog.Nop())
	return newTestRouter(func(r chi.Router) { h.RegisterRoutes(r, fakeAuth) })
}

func priceEq(s string) any {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func TestRegisterThenDuplicate(t *testing.T) {
	svc := &mockEnrollmentService{}
	router := newEnrollmentRouter(svc)
	svc.On("Register", mock.Anything, "user-1", validCourseID, priceEq("20")).
		Return(&model.Enrollment{EnrollmentID: "e1", UserID: "user-1", CourseID: validCourseID, Price: decimal.NewFromInt(20)}, nil).Once()
	svc.On("Register", mock.Anything, "user-1", validCourseID, priceEq("20")).
		Return(nil, service.ErrAlreadyRegistered).Once()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/courses/"+validCourseID+"/register", strings.NewReader(`{"price":20}`))))
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.RegisterResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Your register Done", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "e1", resp.Data.EnrollmentID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/courses/"+validCourseID+"/register", strings.NewReader(`{"price":"20"}`))))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "userAlreadyRegister", decodeMessage(t, rec))
	svc.AssertExpectations(t)
}

func TestRegisterEmptyBodyUsesZeroPrice(t *testing.T) {
	svc := &mockEnrollmentService{}
	router := newEnrollmentRouter(svc)
	svc.On("Register", mock.Anything, "user-1", validCourseID, priceEq("0")).
		Return(&model.Enrollment{EnrollmentID: "e1"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/courses/"+validCourseID+"/register", nil)))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterRejectsNegativePrice(t *testing.T) {
	svc := &mockEnrollmentService{}
	router := newEnrollmentRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/courses/"+validCourseID+"/register", strings.NewReader(`{"price":-5}`))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterUnknownCourse(t *testing.T) {
	svc := &mockEnrollmentService{}
	router := newEnrollmentRouter(svc)
	svc.On("Register", mock.Anything, "user-1", "nope", mock.Anything).Return(nil, service.ErrCourseNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/courses/nope/register", strings.NewReader(`{}`))))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
