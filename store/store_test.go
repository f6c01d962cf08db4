package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestStore returns a store with a fixed clock so timestamps are
// deterministic.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return base })
	return s
}

// registerUser creates an account and a profile and returns the id.
func registerUser(t *testing.T, s *Store, username string) UserID {
	t.Helper()
	acct, err := s.RegisterAccount(username+"@example.com", "hash")
	require.NoError(t, err)
	_, err = s.CreateProfile(acct.ID, username, "bio for "+username, "")
	require.NoError(t, err)
	return acct.ID
}

// makePrivate flips a user's profile to private.
func makePrivate(t *testing.T, s *Store, userID UserID) {
	t.Helper()
	_, err := s.UpdatePrivacySettings(userID, PrivacySettings{
		ProfileVisibility: ProfilePrivate,
		ShowSocialGraph:   true,
	})
	require.NoError(t, err)
}

func TestRegisterAccountAssignsMonotonicIDs(t *testing.T) {
	s := newTestStore(t)

	first, err := s.RegisterAccount("a@example.com", "h")
	require.NoError(t, err)
	second, err := s.RegisterAccount("b@example.com", "h")
	require.NoError(t, err)

	require.Equal(t, UserID(1), first.ID)
	require.Equal(t, UserID(2), second.ID)
}

func TestRegisterAccountRejectsDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.RegisterAccount("dup@example.com", "h")
	require.NoError(t, err)

	_, err = s.RegisterAccount("  DUP@Example.COM ", "h")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAccountByEmailNormalizes(t *testing.T) {
	s := newTestStore(t)

	acct, err := s.RegisterAccount("Case@Example.com", "h")
	require.NoError(t, err)

	found, err := s.AccountByEmail("case@example.com")
	require.NoError(t, err)
	require.Equal(t, acct.ID, found.ID)

	_, err = s.AccountByEmail("missing@example.com")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func fillFollowing(t *testing.T, s *Store, follower UserID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		target, err := s.RegisterAccount(fmt.Sprintf("filler%d@example.com", i), "h")
		require.NoError(t, err)
		_, err = s.CreateProfile(target.ID, fmt.Sprintf("filler_%d", i), "", "")
		require.NoError(t, err)
		_, err = s.Follow(follower, target.ID, "")
		require.NoError(t, err)
	}
}
