package repository

import "errors"

// Sentinel kinds for score store errors.
var (
	ErrNotFound  = errors.New("participant not found")
	ErrEmptyName = errors.New("empty participant name")
)
