// Package repository defines the latest-score store interface and errors.
package repository

import "context"

// Entry represents one participant row in the score store.
// Position is the 1-based index of the name in ascending lexicographic
// order over all stored names.
type Entry struct {
	Position int
	Name     string
	Score    int64
}

// Store provides read/write access to the latest-score mapping.
type Store interface {
	// Upsert sets the score for name, overwriting any previous value.
	// Returns true when the name was newly created, false on overwrite.
	Upsert(ctx context.Context, name string, score int64) (bool, error)

	// Get returns the entry for a name, including its sorted position.
	// Returns ErrNotFound if the name is unknown.
	Get(ctx context.Context, name string) (Entry, error)

	// SortedByName returns all entries in ascending name order.
	SortedByName(ctx context.Context) ([]Entry, error)

	// Count returns the number of names tracked in the store.
	Count(ctx context.Context) int
}
