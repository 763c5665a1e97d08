package catalog

import (
	"sync"
	"time"
)

// SessionState is the process-scoped cookie cache the fallback catalog
// adapter owns, per the design note that source-level module globals
// become a state object owned by a single collaborator rather than
// anything the core touches. Reads take the read lock and writes take the
// write lock; nothing re-checks the cookie under the write lock, so
// concurrent refreshes each install their own value and the last one wins.
type SessionState struct {
	mu        sync.RWMutex
	cookie    string
	obtained  time.Time
}

// Cookie returns the cached cookie and whether one is cached (non-empty).
// No expiry is applied: a cookie stays cached until Invalidate or Refresh.
func (s *SessionState) Cookie() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cookie, s.cookie != ""
}

// Refresh installs a newly obtained cookie, replacing whatever was cached.
// Safe to call concurrently; a second caller racing to refresh the same
// stale cookie just overwrites with an equally fresh value.
func (s *SessionState) Refresh(cookie string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookie = cookie
	s.obtained = time.Now()
}

// Invalidate drops the cached cookie, forcing the next Cookie caller to
// see it as absent. Called after a 403/404 forces one cookie refresh.
func (s *SessionState) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookie = ""
}
