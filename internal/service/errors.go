package service

import "errors"

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidCourseID   = errors.New("course id is not valid")
	ErrAlreadyRegistered = errors.New("user already registered for course")
	ErrCoverRequired     = errors.New("cover image is required")
	ErrInvalidCover      = errors.New("cover image is invalid")
)
