// Package favorites persists each user's saved movie titles.
//
// The backing store is read and written as a whole on every access.
// Reads fail open: a missing or unreadable backend behaves as an empty
// store and is reported through logs only, never to the user path.
package favorites

import "context"

// Store is the per-user favorites persistence consumed by handlers.
type Store interface {
	// Load returns the whole mapping of user id to ordered titles.
	Load(ctx context.Context) map[string][]string

	// Save replaces the whole mapping.
	Save(ctx context.Context, all map[string][]string) error

	// Add appends title to the user's list unless an equal title is
	// already stored (case-insensitive). Reports whether it was added.
	Add(ctx context.Context, userID int64, title string) (bool, error)

	// List returns the user's titles in insertion order.
	List(ctx context.Context, userID int64) []string
}
