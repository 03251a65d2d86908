package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/middleware"
	"coursehub/internal/model"
	"coursehub/internal/service"
	"coursehub/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxCourseFormBytes bounds the whole multipart body of a course creation.
const maxCourseFormBytes = 6 << 20

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	validate      *validator.Validate
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, validate *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, validate: validate, logger: logger}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMw, adminMw func(http.Handler) http.Handler) {
	r.Get("/courses/category/{category}", h.getCoursesByCategory)
	r.With(authMw).Get("/courses/{course}", h.getCourseDetail)
	r.With(authMw, adminMw).Post("/courses", h.createCourse)
	r.With(authMw, adminMw).Delete("/courses/{course}", h.deleteCourse)
}

// createCourse godoc
// @Summary Create a new course
// @Description Creates a course from a multipart form. The cover image is required.
// @Tags courses
// @Accept mpfd
// @Produce json
// @Param name formData string true "Course name"
// @Param description formData string false "Description"
// @Param support formData string false "Support channel"
// @Param href formData string false "URL slug, derived from name when empty"
// @Param price formData string false "Price"
// @Param status formData string false "start, presell or finished"
// @Param discount formData int false "Discount percentage"
// @Param categoryId formData string true "Category ID"
// @Param cover formData file true "Cover image"
// @Success 201 {object} dto.CourseResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO "Cover image is required or validation failed"
// @Failure 401 {object} dto.ErrorResponseDTO
// @Failure 403 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses [post]
func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		util.WriteError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCourseFormBytes)
	cover, _, err := r.FormFile("cover")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		util.WriteError(w, http.StatusBadRequest, "Cover image is required")
		return
	}
	defer cover.Close()

	req, err := parseCourseForm(r)
	if err != nil {
		util.WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		util.WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
		Support:     req.Support,
		Href:        req.Href,
		Price:       req.Price,
		Status:      req.Status,
		Discount:    req.Discount,
		CategoryID:  req.CategoryID,
		CreatorID:   userID,
	}
	created, err := h.courseService.CreateCourse(r.Context(), course, cover)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, dto.ToCourseResponse(created))
}

func parseCourseForm(r *http.Request) (*dto.CourseCreateDTO, error) {
	req := &dto.CourseCreateDTO{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: r.FormValue("description"),
		Support:     r.FormValue("support"),
		Href:        strings.TrimSpace(r.FormValue("href")),
		Status:      strings.TrimSpace(r.FormValue("status")),
		CategoryID:  strings.TrimSpace(r.FormValue("categoryId")),
	}
	if v := strings.TrimSpace(r.FormValue("price")); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.New("price must be a decimal number")
		}
		req.Price = price
	}
	if v := strings.TrimSpace(r.FormValue("discount")); v != "" {
		discount, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("discount must be an integer")
		}
		req.Discount = discount
	}
	return req, nil
}

// getCoursesByCategory godoc
// @Summary List courses of a category
// @Description Returns the courses of the category with the given href. Unknown categories yield an empty list.
// @Tags courses
// @Produce json
// @Param category path string true "Category href"
// @Success 200 {array} dto.CourseResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/category/{category} [get]
func (h *CourseHandler) getCoursesByCategory(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.GetCoursesByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, dto.ToCourseResponses(courses))
}

// getCourseDetail godoc
// @Summary Get a course page
// @Description Returns a course with its sessions, accepted comments, student count and whether the caller is registered.
// @Tags courses
// @Produce json
// @Param course path string true "Course href"
// @Success 200 {object} dto.CourseDetailResponseDTO
// @Failure 401 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO "Course not found"
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/{course} [get]
func (h *CourseHandler) getCourseDetail(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	detail, err := h.courseService.GetCourseDetail(r.Context(), chi.URLParam(r, "course"), userID)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, dto.CourseDetailResponseDTO{
		Course:              dto.ToCourseResponse(detail.Course),
		Sessions:            dto.ToSessionResponses(detail.Sessions),
		Comments:            dto.ToCommentResponses(detail.Comments),
		CourseStudentsCount: detail.CourseStudentsCount,
		IsUserRegister:      detail.IsUserRegistered,
	})
}

// deleteCourse godoc
// @Summary Delete a course
// @Description Deletes a course with its sessions, registrations and comments.
// @Tags courses
// @Produce json
// @Param course path string true "Course ID"
// @Success 200 {object} dto.CourseDeletedResponseDTO
// @Failure 401 {object} dto.ErrorResponseDTO
// @Failure 403 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO "course not found"
// @Failure 409 {object} dto.ErrorResponseDTO "CourseId is not valid"
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/{course} [delete]
func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.courseService.DeleteCourse(r.Context(), chi.URLParam(r, "course"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			util.WriteError(w, http.StatusNotFound, "course not found")
			return
		}
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, dto.CourseDeletedResponseDTO{
		Message:       "Course Deleted successfully",
		DeletedCourse: dto.ToCourseResponse(deleted),
	})
}
