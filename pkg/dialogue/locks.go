package dialogue

import (
	"sync"
)

// sessionLocks serializes turns per session ID so read-modify-write of
// the session store never interleaves for the same conversation. Turns
// for different sessions run fully concurrently. Entries are
// reference-counted and dropped once no turn holds or waits on them,
// so the registry stays proportional to in-flight turns rather than
// every session ID ever seen.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// Acquire locks the mutex for the session ID and returns its unlock func
func (l *sessionLocks) Acquire(sessionID string) func() {
	l.mu.Lock()
	e, ok := l.locks[sessionID]
	if !ok {
		e = &sessionLock{}
		l.locks[sessionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
