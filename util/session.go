package util

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"decentra-social-network/store"
)

const SessionCookieName = "session_token"

// Sessions maps opaque tokens to user ids. In-memory only: sessions do
// not survive a restart, accounts do.
type Sessions struct {
	mu      sync.RWMutex
	byToken map[string]store.UserID
}

// NewSessions returns an empty session table.
func NewSessions() *Sessions {
	return &Sessions{byToken: make(map[string]store.UserID)}
}

// Create issues a fresh token for the user.
func (s *Sessions) Create(userID store.UserID) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.byToken[token] = userID
	s.mu.Unlock()
	return token
}

// Lookup resolves a token. Returns AnonymousUser for unknown tokens.
func (s *Sessions) Lookup(token string) store.UserID {
	s.mu.RLock()
	userID, ok := s.byToken[token]
	s.mu.RUnlock()
	if !ok {
		return store.AnonymousUser
	}
	return userID
}

// Delete removes a session.
func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	delete(s.byToken, token)
	s.mu.Unlock()
}

// UserIDFromRequest extracts the caller's user id from the session
// cookie. A missing or invalid cookie resolves to AnonymousUser; the
// middleware decides whether that is an error.
func (s *Sessions) UserIDFromRequest(r *http.Request) store.UserID {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return store.AnonymousUser
	}
	return s.Lookup(cookie.Value)
}
