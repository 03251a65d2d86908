package dto

import (
	"time"

	"coursehub/internal/model"

	"github.com/shopspring/decimal"
)

// EnrollmentCreateDTO is the body of a course registration
type EnrollmentCreateDTO struct {
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

type EnrollmentResponseDTO struct {
	EnrollmentID string          `json:"id"`
	UserID       string          `json:"userId"`
	CourseID     string          `json:"courseId"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type RegisterResponseDTO struct {
	Message string                 `json:"message"`
	Data    *EnrollmentResponseDTO `json:"data"`
}

func ToEnrollmentResponse(e *model.Enrollment) *EnrollmentResponseDTO {
	if e == nil {
		return nil
	}
	return &EnrollmentResponseDTO{
		EnrollmentID: e.EnrollmentID,
		UserID:       e.UserID,
		CourseID:     e.CourseID,
		Price:        e.Price,
		CreatedAt:    e.CreatedAt,
	}
}
