package handler

import (
	"errors"
	"net/http"

	"coursehub/internal/service"
	"coursehub/internal/util"

	"github.com/rs/zerolog"
)

const msgInternalError = "Internal Server Error"

// writeServiceError maps service errors to status codes. Unknown errors are
// logged and masked.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrCoverRequired):
		util.WriteError(w, http.StatusBadRequest, "Cover image is required")
	case errors.Is(err, service.ErrInvalidCover):
		util.WriteError(w, http.StatusBadRequest, "Cover must be a PNG, JPEG or GIF image of at most 5MB")
	case errors.Is(err, service.ErrCategoryNotFound):
		util.WriteError(w, http.StatusBadRequest, "Category not found")
	case errors.Is(err, service.ErrCourseNotFound):
		util.WriteError(w, http.StatusNotFound, "Course not found")
	case errors.Is(err, service.ErrSessionNotFound):
		util.WriteError(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, service.ErrInvalidCourseID):
		util.WriteError(w, http.StatusConflict, "CourseId is not valid")
	case errors.Is(err, service.ErrAlreadyRegistered):
		util.WriteError(w, http.StatusConflict, "userAlreadyRegister")
	default:
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		util.WriteError(w, http.StatusInternalServerError, msgInternalError)
	}
}
