// Package store is the in-memory state engine behind the social network:
// accounts, profiles, posts, comments, the follow graph and the
// follow-request workflow, all behind one exclusive write gate.
//
// Every mutating method takes the write lock for its entire multi-step
// update, so edge inserts and their derived counters can never be
// observed out of step. Read queries take the read lock and see one
// consistent snapshot.
package store

import (
	"sync"
	"time"
)

// Store owns all social-network state.
type Store struct {
	mu sync.RWMutex

	accounts     map[UserID]*Account
	accountEmail map[string]UserID

	users     map[UserID]*Profile
	usernames map[string]UserID

	posts        map[PostID]*Post
	comments     map[CommentID]*Comment
	userPosts    map[UserID][]PostID
	postLikes    map[PostID]map[UserID]struct{}
	postComments map[PostID][]CommentID

	connections map[UserID]*connections
	requests    map[RequestID]*FollowRequest

	nextUserID    int64
	nextPostID    int64
	nextCommentID int64
	nextRequestID int64

	now func() time.Time
}

// New returns an empty store. ID allocation starts at 1.
func New() *Store {
	return &Store{
		accounts:      make(map[UserID]*Account),
		accountEmail:  make(map[string]UserID),
		users:         make(map[UserID]*Profile),
		usernames:     make(map[string]UserID),
		posts:         make(map[PostID]*Post),
		comments:      make(map[CommentID]*Comment),
		userPosts:     make(map[UserID][]PostID),
		postLikes:     make(map[PostID]map[UserID]struct{}),
		postComments:  make(map[PostID][]CommentID),
		connections:   make(map[UserID]*connections),
		requests:      make(map[RequestID]*FollowRequest),
		nextUserID:    1,
		nextPostID:    1,
		nextCommentID: 1,
		nextRequestID: 1,
		now:           time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// conns returns the lazily created edge sets for a user. Caller must hold
// the write lock.
func (s *Store) conns(id UserID) *connections {
	c, ok := s.connections[id]
	if !ok {
		c = newConnections()
		s.connections[id] = c
	}
	return c
}
