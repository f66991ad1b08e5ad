package repository

import "errors"

var (
	// ErrFeedbackNotFound is returned by mutations that target a feedback
	// id with no row behind it.
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrUsernameTaken    = errors.New("username already exists")
)
