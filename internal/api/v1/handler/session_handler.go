package handler

import (
	"encoding/json"
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/model"
	"coursehub/internal/service"
	"coursehub/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type SessionHandler struct {
	sessionService service.SessionService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewSessionHandler(sessionService service.SessionService, validate *validator.Validate, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, validate: validate, logger: logger}
}

// RegisterRoutes mounts session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router, authMw, adminMw func(http.Handler) http.Handler) {
	r.With(authMw, adminMw).Get("/courses/sessions", h.listSessions)
	r.With(authMw, adminMw).Delete("/courses/sessions/{session}", h.deleteSession)
	r.With(authMw, adminMw).Post("/courses/{course}/sessions", h.createSession)
	r.With(authMw).Get("/courses/{course}/{session}", h.getSessionInfo)
}

// createSession godoc
// @Summary Create a session
// @Description Adds a session to a course. The video is set to a placeholder.
// @Tags sessions
// @Accept json
// @Produce json
// @Param course path string true "Course ID"
// @Param session body dto.SessionCreateDTO true "Session creation request"
// @Success 201 {object} dto.SessionResponseDTO
// @Failure 400 {object} dto.ErrorResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO "Course not found"
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/{course}/sessions [post]
func (h *SessionHandler) createSession(w http.ResponseWriter, r *http.Request) {
	var req dto.SessionCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		util.WriteError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	session := &model.Session{Title: req.Title, Time: req.Time, Free: req.Free}
	created, err := h.sessionService.CreateSession(r.Context(), chi.URLParam(r, "course"), session)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, dto.ToSessionResponse(created))
}

// listSessions godoc
// @Summary List all sessions
// @Tags sessions
// @Produce json
// @Success 200 {array} dto.SessionResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/sessions [get]
func (h *SessionHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionService.GetAllSessions(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, dto.ToSessionResponses(sessions))
}

// getSessionInfo godoc
// @Summary Get a session
// @Description Returns a session of a course together with all sessions of that course.
// @Tags sessions
// @Produce json
// @Param course path string true "Course href"
// @Param session path string true "Session ID"
// @Success 200 {object} dto.SessionInfoResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/{course}/{session} [get]
func (h *SessionHandler) getSessionInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.sessionService.GetSessionInfo(r.Context(), chi.URLParam(r, "course"), chi.URLParam(r, "session"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, dto.SessionInfoResponseDTO{
		Session:  dto.ToSessionResponse(info.Session),
		Sessions: dto.ToSessionResponses(info.Sessions),
	})
}

// deleteSession godoc
// @Summary Delete a session
// @Tags sessions
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} dto.SessionResponseDTO
// @Failure 404 {object} dto.ErrorResponseDTO "Session not found"
// @Failure 500 {object} dto.ErrorResponseDTO
// @Router /courses/sessions/{session} [delete]
func (h *SessionHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.sessionService.DeleteSession(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, dto.ToSessionResponse(deleted))
}
