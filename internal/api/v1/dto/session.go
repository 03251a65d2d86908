package dto

import (
	"time"

	"coursehub/internal/model"
)

// SessionCreateDTO is used for incoming session creation requests
type SessionCreateDTO struct {
	Title string `json:"title" validate:"required,max=255"`
	Time  string `json:"time" validate:"required,max=20"`
	Free  bool   `json:"free"`
}

type SessionResponseDTO struct {
	SessionID string             `json:"id"`
	Title     string             `json:"title"`
	Time      string             `json:"time"`
	Free      bool               `json:"free"`
	Video     string             `json:"video"`
	CourseID  string             `json:"courseId"`
	Course    *CourseResponseDTO `json:"course,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// SessionInfoResponseDTO is a session with its sibling sessions
type SessionInfoResponseDTO struct {
	Session  *SessionResponseDTO  `json:"session"`
	Sessions []SessionResponseDTO `json:"sessions"`
}

func ToSessionResponse(s *model.Session) *SessionResponseDTO {
	if s == nil {
		return nil
	}
	return &SessionResponseDTO{
		SessionID: s.SessionID,
		Title:     s.Title,
		Time:      s.Time,
		Free:      s.Free,
		Video:     s.Video,
		CourseID:  s.CourseID,
		Course:    ToCourseResponse(s.Course),
		CreatedAt: s.CreatedAt,
	}
}

func ToSessionResponses(sessions []model.Session) []SessionResponseDTO {
	out := make([]SessionResponseDTO, 0, len(sessions))
	for i := range sessions {
		out = append(out, *ToSessionResponse(&sessions[i]))
	}
	return out
}
