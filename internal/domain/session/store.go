package session

import (
	"context"
)

// Store is the durable keyed record of conversation state. Callers always
// read-modify-write the whole session; there is no partial-field API.
type Store interface {
	// Get returns the session for the ID, creating a fresh default
	// session when none exists. Lazy init is idempotent.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Save upserts the whole session record
	Save(ctx context.Context, s *Session) error
}
