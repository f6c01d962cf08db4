package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decentra-social-network/store"
)

func TestSessionLifecycle(t *testing.T) {
	sessions := NewSessions()

	token := sessions.Create(store.UserID(7))
	require.NotEmpty(t, token)
	assert.Equal(t, store.UserID(7), sessions.Lookup(token))

	other := sessions.Create(store.UserID(8))
	assert.NotEqual(t, token, other)

	sessions.Delete(token)
	assert.Equal(t, store.AnonymousUser, sessions.Lookup(token))
	assert.Equal(t, store.UserID(8), sessions.Lookup(other))
}

func TestLookupUnknownTokenIsAnonymous(t *testing.T) {
	sessions := NewSessions()
	assert.Equal(t, store.AnonymousUser, sessions.Lookup("no-such-token"))
}

func TestUserIDFromRequest(t *testing.T) {
	sessions := NewSessions()
	token := sessions.Create(store.UserID(3))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, store.AnonymousUser, sessions.UserIDFromRequest(r))

	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	assert.Equal(t, store.UserID(3), sessions.UserIDFromRequest(r))

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	assert.Equal(t, store.AnonymousUser, sessions.UserIDFromRequest(bad))
}
