package config

import "errors"

// Sentinel kinds for configuration errors. Callers classify failures with
// errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrLoadConfig    = errors.New("configuration load failed")
)
