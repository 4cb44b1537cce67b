package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rajgh7/surprisevista/internal/domain/session"
)

// MemorySessionStore implements session.Store with an in-process map.
// Used in tests and as a development fallback when Redis is not
// configured; it does not survive restarts or scale across instances.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemorySessionStore creates an empty in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string][]byte)}
}

// Get implements session.Store.Get with idempotent lazy init
func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*session.Session, error) {
	s.mu.RLock()
	raw, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists {
		return session.New(sessionID, ""), nil
	}

	// Sessions round-trip through JSON so callers get an isolated copy,
	// the same as the Redis store
	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save implements session.Store.Save
func (s *MemorySessionStore) Save(_ context.Context, sess *session.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[sess.SessionID] = raw
	s.mu.Unlock()
	return nil
}
