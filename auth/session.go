package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"sync"
	"time"
)

// Session is the server-held state for one client. All access goes
// through methods; the zero value is not usable, use Manager.Start.
type Session struct {
	mu        sync.Mutex
	id        string
	expiresAt time.Time

	userID   uint
	username string
	role     string
	loggedIn bool

	csrfToken    string
	redirectURL  string
	flashSuccess string
	flashError   string
	formData     url.Values
}

// ID returns the opaque session identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

// LogIn marks the session authenticated for the given user.
func (s *Session) LogIn(userID uint, username, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.username = username
	s.role = role
	s.loggedIn = true
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *Session) UserID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Session) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// CSRFToken returns the session's token, creating it on first use.
// The token lives for the whole session unless RotateCSRF is called.
func (s *Session) CSRFToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.csrfToken == "" {
		s.csrfToken = newCSRFToken()
	}
	return s.csrfToken
}

// RotateCSRF replaces the token and returns the new value. The signup
// form rotates on every render; other forms keep the session token.
func (s *Session) RotateCSRF() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.csrfToken = newCSRFToken()
	return s.csrfToken
}

// VerifyCSRF compares a submitted token against the session's current
// token in constant time. An absent or never-issued token never matches.
func (s *Session) VerifyCSRF(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || s.csrfToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.csrfToken)) == 1
}

// FlashSuccess stores a one-shot success message.
func (s *Session) FlashSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashSuccess = msg
}

// FlashError stores a one-shot error message.
func (s *Session) FlashError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashError = msg
}

// PopSuccess returns and clears the pending success message.
func (s *Session) PopSuccess() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flashSuccess
	s.flashSuccess = ""
	return msg, msg != ""
}

// PopError returns and clears the pending error message.
func (s *Session) PopError() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.flashError
	s.flashError = ""
	return msg, msg != ""
}

// StashForm keeps submitted fields so a failed form can repopulate.
// Password fields must be removed by the caller before stashing.
func (s *Session) StashForm(v url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formData = v
}

// PopForm returns and clears stashed form fields.
func (s *Session) PopForm() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.formData
	s.formData = nil
	return v
}

// SaveRedirect records the path to return to after login.
func (s *Session) SaveRedirect(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirectURL = path
}

// PopRedirect returns and clears the saved post-login target.
func (s *Session) PopRedirect() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.redirectURL
	s.redirectURL = ""
	return p, p != ""
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}
