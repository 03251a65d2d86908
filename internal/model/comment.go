package model

import "time"

// Comment is a user's review of a course. Only accepted comments are shown.
type Comment struct {
	CommentID string    `db:"id" json:"id"`
	Body      string    `db:"body" json:"body"`
	CourseID  string    `db:"course_id" json:"course_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Score     int       `db:"score" json:"score"`
	IsAccept  bool      `db:"is_accept" json:"is_accept"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	User *User `db:"-" json:"user,omitempty"`
}
