package model

import "time"

// PlaceholderVideo is stored for every new session until the real asset is
// attached out of band.
const PlaceholderVideo = "video.mp4"

// Session is a single lesson of a course.
type Session struct {
	SessionID string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Time      string    `db:"time" json:"time"`
	Free      bool      `db:"free" json:"free"`
	Video     string    `db:"video" json:"video"`
	CourseID  string    `db:"course_id" json:"course_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Course *Course `db:"-" json:"course,omitempty"`
}
