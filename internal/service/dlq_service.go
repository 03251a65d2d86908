package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/model"
	"coursehub/internal/repository"
)

const dlqStatusUnprocessed = "unprocessed"

var ErrMissingMessageID = errors.New("message id is required")

type DLQService interface {
	ProcessAndSave(ctx context.Context, req *dto.PubSubPushRequest) error
}

type dlqService struct {
	repo repository.DLQRepository
}

func NewDLQService(repo repository.DLQRepository) DLQService {
	return &dlqService{repo: repo}
}

func (s *dlqService) ProcessAndSave(ctx context.Context, req *dto.PubSubPushRequest) error {
	if req.Message.MessageID == "" {
		return ErrMissingMessageID
	}

	payload, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		payload = []byte(req.Message.Data)
	}
	// payload lands in a jsonb column
	if !json.Valid(payload) {
		payload, _ = json.Marshal(string(payload))
	}

	var attributes []byte
	if len(req.Message.Attributes) > 0 {
		attributes, _ = json.Marshal(req.Message.Attributes)
	}

	return s.repo.Create(ctx, &model.DeadLetterMessage{
		SubscriptionName: req.Subscription,
		MessageID:        req.Message.MessageID,
		Payload:          payload,
		Attributes:       attributes,
		Status:           dlqStatusUnprocessed,
	})
}
