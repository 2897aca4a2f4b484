// Package model contains domain models passed between layers.
package model

import "time"

// Registration represents a single registration submitted by clients.
// Fields mirror the JSON schema for POST /registrations.
type Registration struct {
	RegID string    // unique id for idempotency
	Name  string    // participant name
	Score int64     // score reported with this registration
	TS    time.Time // registration timestamp
}
