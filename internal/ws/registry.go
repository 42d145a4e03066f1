package ws

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks which users are currently reachable for push delivery. A
// user holds at most one live connection id; registering a newer connection
// overwrites the previous one (last write wins), and a disconnect for an
// already-replaced connection must not evict the newer mapping.
type Registry struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]string
	byConn map[string]uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[uuid.UUID]string),
		byConn: make(map[string]uuid.UUID),
	}
}

func (r *Registry) Register(userID uuid.UUID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byUser[userID]; ok {
		delete(r.byConn, old)
	}
	r.byUser[userID] = connID
	r.byConn[connID] = userID
}

func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return
	}
	delete(r.byConn, connID)

	// A stale disconnect: the user has re-registered under another
	// connection in the meantime.
	if r.byUser[userID] == connID {
		delete(r.byUser, userID)
	}
}

func (r *Registry) Lookup(userID uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connID, ok := r.byUser[userID]
	return connID, ok
}
