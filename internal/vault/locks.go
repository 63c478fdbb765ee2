package vault

import "sync"

// sessionLocks serializes save/export/delete for the same session id, closing
// the delete-versus-save race instead of inheriting it. Entries are never
// evicted; the map is bounded by the number of distinct sessions seen by this
// process.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the session's mutex and returns its unlock func.
func (l *sessionLocks) lock(sessionID string) func() {
	l.mu.Lock()
	m, ok := l.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sessionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
