package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowPrivateTargetCreatesPendingRequest(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	makePrivate(t, s, bob)

	outcome, err := s.Follow(alice, bob, "hi bob")
	require.NoError(t, err)
	assert.False(t, outcome.Followed)
	require.NotNil(t, outcome.Request)
	assert.Equal(t, RequestPending, outcome.Request.Status)
	assert.Equal(t, alice, outcome.Request.Requester)
	assert.Equal(t, bob, outcome.Request.Target)
	assert.Equal(t, "hi bob", outcome.Request.Message)

	// No edge and no counter movement until approval.
	assert.False(t, s.IsFollowing(alice, bob))
	bobProfile, _ := s.GetProfile(bob)
	assert.Equal(t, int64(0), bobProfile.FollowerCount)
}

func TestDuplicatePendingRequestFails(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	makePrivate(t, s, bob)

	_, err := s.Follow(alice, bob, "")
	require.NoError(t, err)

	_, err = s.Follow(alice, bob, "")
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestApproveCreatesEdgeExactlyOnce(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	makePrivate(t, s, bob)

	outcome, err := s.Follow(alice, bob, "")
	require.NoError(t, err)
	reqID := outcome.Request.ID

	approved, err := s.ApproveFollowRequest(bob, reqID)
	require.NoError(t, err)
	assert.Equal(t, RequestApproved, approved.Status)
	assert.True(t, s.IsFollowing(alice, bob))

	bobProfile, _ := s.GetProfile(bob)
	assert.Equal(t, int64(1), bobProfile.FollowerCount)

	// A terminal request can never be re-processed.
	_, err = s.ApproveFollowRequest(bob, reqID)
	assert.ErrorIs(t, err, ErrRequestNotPending)
	_, err = s.RejectFollowRequest(bob, reqID)
	assert.ErrorIs(t, err, ErrRequestNotPending)

	bobProfile, _ = s.GetProfile(bob)
	assert.Equal(t, int64(1), bobProfile.FollowerCount)
}

func TestApproveWithExistingEdgeKeepsCountersExact(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	makePrivate(t, s, bob)

	// The request is filed while bob is private.
	outcome, err := s.Follow(alice, bob, "")
	require.NoError(t, err)
	reqID := outcome.Request.ID

	// Bob goes public and alice follows directly before he decides.
	_, err = s.UpdatePrivacySettings(bob, PrivacySettings{
		ProfileVisibility: ProfilePublic,
		ShowSocialGraph:   true,
	})
	require.NoError(t, err)
	direct, err := s.Follow(alice, bob, "")
	require.NoError(t, err)
	require.True(t, direct.Followed)

	// Approving the stale request flips its status without touching the
	// already-existing edge.
	approved, err := s.ApproveFollowRequest(bob, reqID)
	require.NoError(t, err)
	assert.Equal(t, RequestApproved, approved.Status)
	assert.True(t, s.IsFollowing(alice, bob))

	followers, err := s.GetFollowers(bob, bob, 0, 0)
	require.NoError(t, err)
	require.Len(t, followers, 1)

	aliceProfile, _ := s.GetProfile(alice)
	bobProfile, _ := s.GetProfile(bob)
	assert.Equal(t, int64(len(followers)), bobProfile.FollowerCount)
	assert.Equal(t, int64(1), aliceProfile.FollowingCount)

	// And a single unfollow settles everything back to zero.
	require.NoError(t, s.Unfollow(alice, bob))
	bobProfile, _ = s.GetProfile(bob)
	assert.Equal(t, int64(0), bobProfile.FollowerCount)
}

func TestRejectLeavesGraphUntouched(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	makePrivate(t, s, bob)

	outcome, err := s.Follow(alice, bob, "")
	require.NoError(t, err)

	rejected, err := s.RejectFollowRequest(bob, outcome.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestRejected, rejected.Status)
	assert.False(t, s.IsFollowing(alice, bob))

	// After rejection the requester may ask again.
	_, err = s.Follow(alice, bob, "")
	assert.NoError(t, err)
}

func TestOnlyTargetMayDecide(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	mallory := registerUser(t, s, "mallory")
	makePrivate(t, s, bob)

	outcome, err := s.Follow(alice, bob, "")
	require.NoError(t, err)

	_, err = s.ApproveFollowRequest(mallory, outcome.Request.ID)
	assert.ErrorIs(t, err, ErrNotRequestTarget)
	_, err = s.RejectFollowRequest(alice, outcome.Request.ID)
	assert.ErrorIs(t, err, ErrNotRequestTarget)

	_, err = s.ApproveFollowRequest(bob, RequestID(404))
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestCancelIsRequesterOnly(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")
	bob := registerUser(t, s, "bob")
	makePrivate(t, s, bob)

	outcome, err := s.Follow(alice, bob, "")
	require.NoError(t, err)

	_, err = s.CancelFollowRequest(bob, outcome.Request.ID)
	assert.ErrorIs(t, err, ErrNotRequestTarget)

	cancelled, err := s.CancelFollowRequest(alice, outcome.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestCancelled, cancelled.Status)
	assert.False(t, s.IsFollowing(alice, bob))

	assert.Empty(t, s.PendingFollowRequests(bob))
}

func TestPendingFollowRequestsOldestFirst(t *testing.T) {
	s := newTestStore(t)
	bob := registerUser(t, s, "bob")
	makePrivate(t, s, bob)

	var want []RequestID
	for _, name := range []string{"alice", "carol", "dave"} {
		requester := registerUser(t, s, name)
		outcome, err := s.Follow(requester, bob, "")
		require.NoError(t, err)
		want = append(want, outcome.Request.ID)
	}

	pending := s.PendingFollowRequests(bob)
	require.Len(t, pending, 3)
	for i, req := range pending {
		assert.Equal(t, want[i], req.ID)
	}
}

func TestPendingRequestCapIsEnforced(t *testing.T) {
	s := newTestStore(t)
	alice := registerUser(t, s, "alice")

	for i := 0; i < MaxPendingRequests; i++ {
		target := registerUser(t, s, fmt.Sprintf("private_%d", i))
		makePrivate(t, s, target)
		_, err := s.Follow(alice, target, "")
		require.NoError(t, err)
	}

	extra := registerUser(t, s, "one_more")
	makePrivate(t, s, extra)
	_, err := s.Follow(alice, extra, "")
	assert.ErrorIs(t, err, ErrPendingLimit)
}
