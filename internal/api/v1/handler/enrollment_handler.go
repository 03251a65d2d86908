package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/middleware"
	"coursehub/internal/service"
	"coursehub/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
	validate          *validator.Validate
	logger            zerolog.Logger
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService, validate *validator.Validate, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService, validate: validate, logger: logger}
}

// RegisterRoutes mounts registration routes
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.With(authMw).Post("/courses/{course}/register", h.register)
}

// register godoc
// @Summary Register for a course
// @Description Registers the authenticated user for a course at the given price.
// @Tags courses
// @Accept json
// @Produce json
// @Param course path string true "Course ID"
// @Param body body dto.EnrollmentCreateDTO false "Registration request"
// @Success 201 {object} dto.RegisterResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 401 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO "Course not found"
// @Failure 409 {object} dto.ErrorResponseDTO "userAlreadyRegister"
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/{course}/register [post]
func (h *EnrollmentHandler) register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		util.WriteError(w, http.StatusUnauthorized, "Unauthorized: User ID not found in context")
		return
	}

	var req dto.EnrollmentCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		util.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		util.WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	enrollment, err := h.enrollmentService.Register(r.Context(), userID, chi.URLParam(r, "course"), req.Price)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, dto.RegisterResponseDTO{
		Message: "Your register Done",
		Data:    dto.ToEnrollmentResponse(enrollment),
	})
}
