// Package session owns the authentication token and cached user profile.
// It is the single source of truth for "is a user logged in": the HTTP client
// reads it before every request and clears it when the backend reports the
// token invalid.
package session

import (
	"sync"

	"github.com/stockwatch/stockwatch-go/internal/model"
)

// Session pairs the bearer token with the user it belongs to. The two are
// saved and cleared together; a token without a user (or the reverse) is
// treated as no session at all.
type Session struct {
	Token string
	User  model.User
}

// Store persists at most one session. Save and Clear are atomic from the
// caller's perspective: Load never observes a token without its user.
//
// Load fails safe: a partially present or unparseable session reads as absent
// rather than as an error, so a corrupted store only forces a re-login.
type Store interface {
	Save(s Session) error
	Load() (Session, bool)
	Clear() error
	IsAuthenticated() bool

	// OnClear registers a callback invoked after every Clear, including the
	// clear triggered by a 401 response. It lets consumers react to session
	// invalidation (force a re-login prompt) without polling the store.
	OnClear(fn func())
}

// MemoryStore keeps the session in process memory. Used in tests and for
// callers that do not want the session to outlive the process.
type MemoryStore struct {
	mu       sync.Mutex
	session  Session
	present  bool
	onClear  []func()
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores the session, replacing any previous one.
func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.present = true
	return nil
}

// Load returns the current session, or false when none is stored.
func (m *MemoryStore) Load() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present || m.session.Token == "" {
		return Session{}, false
	}
	return m.session, true
}

// Clear removes the session. Safe to call repeatedly.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.session = Session{}
	m.present = false
	callbacks := append([]func(){}, m.onClear...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// IsAuthenticated reports whether a token is stored.
func (m *MemoryStore) IsAuthenticated() bool {
	_, ok := m.Load()
	return ok
}

// OnClear registers a clear callback.
func (m *MemoryStore) OnClear(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClear = append(m.onClear, fn)
}
