package seeder

import "errors"

// Sentinel kinds for seeder errors.
var (
	ErrMissingBaseURL = errors.New("missing base url")
	ErrNothingToSeed  = errors.New("nothing to seed")
)
