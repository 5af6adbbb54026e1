package session

import (
	"context"
	"sync"

	"sevahub/database/docstore"
	"sevahub/database/sessioncache"
	"sevahub/services/credential"
	"sevahub/services/directory"
)

// Manager constructs one session aggregate per client session ID. Sessions
// are built once and handed out by reference, so all handlers for a client
// share the same aggregate instead of an ambient singleton.
type Manager struct {
	backend   credential.Backend
	store     docstore.Store
	cache     sessioncache.Cache
	directory directory.DirectoryService

	mu       sync.Mutex
	sessions map[string]*DefaultSessionService
}

// NewManager creates a session manager over the injected capabilities.
func NewManager(backend credential.Backend, store docstore.Store, cache sessioncache.Cache, dir directory.DirectoryService) *Manager {
	return &Manager{
		backend:   backend,
		store:     store,
		cache:     cache,
		directory: dir,
		sessions:  make(map[string]*DefaultSessionService),
	}
}

// Get returns the session for the given client session ID, creating and
// initializing it on first use. Initialization runs once per session;
// concurrent first requests block until it completes.
func (m *Manager) Get(ctx context.Context, sessionID string) *DefaultSessionService {
	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok {
		m.mu.Unlock()
		return s
	}
	s := New(sessionID, m.backend, m.store, m.cache, m.directory)
	m.sessions[sessionID] = s
	m.mu.Unlock()

	s.Initialize(ctx)
	return s
}

// Drop closes and removes a session, detaching its backend listener.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}
