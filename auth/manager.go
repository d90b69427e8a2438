// Package auth holds the session manager and the request guards every
// protected page goes through.
package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionCookieName = "session"

// DefaultTTL is how long an idle session stays valid.
const DefaultTTL = 14 * 24 * time.Hour

// Manager owns the in-process session store, keyed by the opaque
// identifier held in the client's cookie.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{sessions: map[string]*Session{}, ttl: ttl}
}

// Start creates a fresh session and sets its cookie.
func (m *Manager) Start(w http.ResponseWriter) *Session {
	s := &Session{id: uuid.NewString(), expiresAt: time.Now().Add(m.ttl)}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	m.setCookie(w, s.id)
	return s
}

// Load resolves the request's session cookie. Expired sessions are
// dropped on lookup; there is no background sweeper.
func (m *Manager) Load(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	m.mu.RLock()
	s, ok := m.sessions[c.Value]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, c.Value)
		m.mu.Unlock()
		return nil, false
	}
	return s, true
}

// Regenerate swaps the session's identifier for a fresh one, keeping
// all other session data. The old identifier stops resolving
// immediately. Called on login to defeat session fixation.
func (m *Manager) Regenerate(w http.ResponseWriter, s *Session) {
	newID := uuid.NewString()
	m.mu.Lock()
	s.mu.Lock()
	delete(m.sessions, s.id)
	s.id = newID
	s.expiresAt = time.Now().Add(m.ttl)
	s.mu.Unlock()
	m.sessions[newID] = s
	m.mu.Unlock()
	m.setCookie(w, newID)
}

// Destroy removes the session and clears the client cookie.
func (m *Manager) Destroy(w http.ResponseWriter, s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.ID())
	m.mu.Unlock()
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// Len reports the number of live sessions. Used by tests.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(m.ttl),
	})
}
