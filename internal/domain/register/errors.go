package register

import "errors"

// Sentinel kinds for registration errors.
var (
	ErrEmptyName = errors.New("empty participant name")
)
