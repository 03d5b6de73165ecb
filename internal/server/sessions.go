package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-assistant/internal/session"
)

// sessionEntry pairs a context store with its bookkeeping.
type sessionEntry struct {
	ID        string
	Store     *session.Store
	CreatedAt time.Time
}

// sessionRegistry tracks the per-client context stores. Sessions are
// in-memory only; nothing is written to durable storage.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*sessionEntry)}
}

// Create registers a fresh session and returns its ID.
func (r *sessionRegistry) Create() *sessionEntry {
	entry := &sessionEntry{
		ID:        uuid.NewString(),
		Store:     session.NewStore(),
		CreatedAt: time.Now(),
	}
	r.mu.Lock()
	r.sessions[entry.ID] = entry
	r.mu.Unlock()
	return entry
}

// Get returns the session for an ID.
func (r *sessionRegistry) Get(id string) (*sessionEntry, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return entry, nil
}

// Delete removes a session.
func (r *sessionRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return &ErrSessionNotFound{ID: id}
	}
	delete(r.sessions, id)
	return nil
}
