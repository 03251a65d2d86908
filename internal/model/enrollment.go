package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enrollment records that a user registered for a course at a given price.
// At most one exists per (UserID, CourseID).
type Enrollment struct {
	EnrollmentID string          `db:"id" json:"id"`
	UserID       string          `db:"user_id" json:"user_id"`
	CourseID     string          `db:"course_id" json:"course_id"`
	Price        decimal.Decimal `db:"price" json:"price"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
