package handler

import (
	"encoding/json"
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/service"
	"coursehub/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type DLQHandler struct {
	service service.DLQService
	logger  zerolog.Logger
}

func NewDLQHandler(s service.DLQService, l zerolog.Logger) *DLQHandler {
	return &DLQHandler{service: s, logger: l}
}

// RegisterRoutes mounts the Pub/Sub push endpoint
func (h *DLQHandler) RegisterRoutes(r chi.Router, pubsubAuthMw func(http.Handler) http.Handler) {
	r.With(pubsubAuthMw).Post("/dlq/record", h.recordDLQ)
}

// recordDLQ godoc
// @Summary Record a dead-lettered Pub/Sub message
// @Tags dlq
// @Accept json
// @Param body body dto.PubSubPushRequest true "Pub/Sub push envelope"
// @Success 204
// @Failure 400 {object} dto.ErrorResponseDTO
// @Router /dlq/record [post]
func (h *DLQHandler) recordDLQ(w http.ResponseWriter, r *http.Request) {
	var req dto.PubSubPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteError(w, http.StatusBadRequest, "Invalid Pub/Sub message format")
		return
	}
	if req.Message.MessageID == "" {
		util.WriteError(w, http.StatusBadRequest, "Invalid Pub/Sub message format: missing message ID")
		return
	}

	h.logger.Info().
		Str("messageId", req.Message.MessageID).
		Str("subscription", req.Subscription).
		Msg("Processing dead-letter queue message")

	// Always 204 so Pub/Sub does not redeliver a message that is already dead-lettered.
	if err := h.service.ProcessAndSave(r.Context(), &req); err != nil {
		h.logger.Error().Err(err).Str("messageId", req.Message.MessageID).Msg("Failed to save DLQ message to database")
	}
	w.WriteHeader(http.StatusNoContent)
}
