// Package session manages the sessions opened against a project's .fmu
// directory. Sessions are token-addressed, expire on a sliding TTL, and
// live in memory behind the manager; nothing is shared process-wide.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/equinor/fmu-settings-api/pkg/errors"
)

// Session represents work in progress against an open project.
type Session struct {
	ID           string    `json:"id"`
	ProjectRoot  string    `json:"project_root"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Manager stores active sessions. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the manager's clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session manager with the given session TTL.
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Create opens a new session for a project root and returns it.
func (m *Manager) Create(projectRoot string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	session := &Session{
		ID:           uuid.NewString(),
		ProjectRoot:  projectRoot,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
		LastAccessed: now,
	}
	m.sessions[session.ID] = session
	return *session
}

// Get resolves a session token. Accessing a live session slides its
// expiry forward by the TTL; an expired session is removed and reported
// as expired, not merely missing.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return Session{}, errors.ErrSessionNotFound
	}

	now := m.now()
	if now.After(session.ExpiresAt) {
		delete(m.sessions, id)
		return Session{}, errors.ErrSessionExpired
	}

	session.LastAccessed = now
	session.ExpiresAt = now.Add(m.ttl)
	return *session, nil
}

// Destroy removes a session by token. Destroying an unknown token is
// not an error.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of stored sessions, expired or not.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
