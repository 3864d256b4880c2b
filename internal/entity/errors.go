package entity

import "errors"

// Domain errors
var (
	// Chat input errors
	ErrEmptyMessages   = errors.New("chat messages are empty")
	ErrNoValidMessages = errors.New("no valid messages after filtering")

	// Settings errors
	ErrMissingSetting = errors.New("required setting is missing")
)
