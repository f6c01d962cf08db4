package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPopulatedStore creates a store with accounts, profiles, posts,
// likes, comments, edges, blocks and a pending request.
func buildPopulatedStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)

	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	carol := registerUser(t, s, "carol")
	dave := registerUser(t, s, "dave")
	makePrivate(t, s, carol)

	_, err := s.Follow(alice, bob, "")
	require.NoError(t, err)
	_, err = s.Follow(bob, alice, "")
	require.NoError(t, err)
	_, err = s.Follow(alice, carol, "please")
	require.NoError(t, err)
	require.NoError(t, s.Block(bob, dave))

	post, err := s.CreatePost(bob, "snapshot me", PostPublic)
	require.NoError(t, err)
	require.NoError(t, s.LikePost(alice, post.ID))
	_, err = s.AddComment(alice, post.ID, "saved")
	require.NoError(t, err)

	return s
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	original := buildPopulatedStore(t)
	snap := original.Snapshot()

	restored := newTestStore(t)
	restored.Restore(snap)

	assert.Equal(t, snap, restored.Snapshot())
}

func TestRestoreRecomputesDerivedCounters(t *testing.T) {
	original := buildPopulatedStore(t)
	snap := original.Snapshot()

	// Corrupt every cached counter in the snapshot. Restore must ignore
	// them and rebuild from the relations.
	for i := range snap.Profiles {
		snap.Profiles[i].FollowerCount = 99
		snap.Profiles[i].FollowingCount = 99
		snap.Profiles[i].PostCount = 99
	}
	for i := range snap.Posts {
		snap.Posts[i].LikeCount = 99
		snap.Posts[i].CommentCount = 99
	}

	restored := newTestStore(t)
	restored.Restore(snap)

	for _, want := range original.Snapshot().Profiles {
		got, ok := restored.GetProfile(want.ID)
		require.True(t, ok)
		assert.Equal(t, want.FollowerCount, got.FollowerCount, "user %d followers", want.ID)
		assert.Equal(t, want.FollowingCount, got.FollowingCount, "user %d following", want.ID)
		assert.Equal(t, want.PostCount, got.PostCount, "user %d posts", want.ID)
	}
	for _, want := range original.Snapshot().Posts {
		got, ok := restored.GetPost(want.AuthorID, want.ID)
		require.True(t, ok)
		assert.Equal(t, want.LikeCount, got.LikeCount)
		assert.Equal(t, want.CommentCount, got.CommentCount)
	}
}

func TestRestorePreservesIDCounters(t *testing.T) {
	original := buildPopulatedStore(t)

	restored := newTestStore(t)
	restored.Restore(original.Snapshot())

	// New entities must not collide with restored ones.
	acct, err := restored.RegisterAccount("fresh@example.com", "h")
	require.NoError(t, err)
	assert.Equal(t, UserID(5), acct.ID)

	post, err := restored.CreatePost(acct.ID, "after restart", PostPublic)
	require.NoError(t, err)
	assert.Equal(t, PostID(2), post.ID)
}

func TestRestoreRebuildsSecondaryIndexes(t *testing.T) {
	original := buildPopulatedStore(t)

	restored := newTestStore(t)
	restored.Restore(original.Snapshot())

	// Email index.
	_, err := restored.AccountByEmail("alice@example.com")
	require.NoError(t, err)

	// Username index.
	available, err := restored.CheckUsernameAvailability("bob")
	require.NoError(t, err)
	assert.False(t, available)

	// Graph sets and block state.
	assert.True(t, restored.IsFollowing(UserID(1), UserID(2)))
	_, err = restored.Follow(UserID(4), UserID(2), "")
	assert.ErrorIs(t, err, ErrBlocked)

	// Pending request survives with its message.
	pending := restored.PendingFollowRequests(UserID(3))
	require.Len(t, pending, 1)
	assert.Equal(t, "please", pending[0].Message)
	assert.Equal(t, RequestPending, pending[0].Status)
}

func TestRestoreOnEmptySnapshotYieldsEmptyStore(t *testing.T) {
	restored := newTestStore(t)
	restored.Restore(Snapshot{NextUserID: 1, NextPostID: 1, NextCommentID: 1, NextRequestID: 1})

	stats := restored.PlatformStats()
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalPosts)

	acct, err := restored.RegisterAccount("first@example.com", "h")
	require.NoError(t, err)
	assert.Equal(t, UserID(1), acct.ID)
}
