package dto

import (
	"time"

	"coursehub/internal/model"
)

type CommentResponseDTO struct {
	CommentID string           `json:"id"`
	Body      string           `json:"body"`
	Score     int              `json:"score"`
	User      *UserResponseDTO `json:"user,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func ToCommentResponses(comments []model.Comment) []CommentResponseDTO {
	out := make([]CommentResponseDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentResponseDTO{
			CommentID: c.CommentID,
			Body:      c.Body,
			Score:     c.Score,
			User:      ToUserResponse(c.User),
			CreatedAt: c.CreatedAt,
		})
	}
	return out
}
