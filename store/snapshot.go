package store

import "sort"

// Like is one row of the like relation in a snapshot.
type Like struct {
	PostID PostID
	UserID UserID
}

// Edge is one directed follow relationship in a snapshot.
type Edge struct {
	Follower UserID
	Followed UserID
}

// Block is one directed block relationship in a snapshot.
type Block struct {
	Blocker UserID
	Blocked UserID
}

// Snapshot is a complete, consistent image of the store: every entity
// map, the graph relations and the id counters. It is what the
// checkpointer persists and what a restart restores from.
type Snapshot struct {
	Accounts []Account
	Profiles []Profile
	Posts    []Post
	Comments []Comment
	Likes    []Like
	Edges    []Edge
	Blocks   []Block
	Requests []FollowRequest

	NextUserID    int64
	NextPostID    int64
	NextCommentID int64
	NextRequestID int64
}

// Snapshot captures the current state under the read lock. Mutations are
// excluded for the duration, so the image is consistent. All slices come
// back in a deterministic order so two snapshots of the same state
// compare equal.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		NextUserID:    s.nextUserID,
		NextPostID:    s.nextPostID,
		NextCommentID: s.nextCommentID,
		NextRequestID: s.nextRequestID,
	}

	for _, acct := range s.accounts {
		snap.Accounts = append(snap.Accounts, *acct)
	}
	for _, profile := range s.users {
		snap.Profiles = append(snap.Profiles, *profile)
	}
	for _, post := range s.posts {
		snap.Posts = append(snap.Posts, *post)
	}
	for _, comment := range s.comments {
		snap.Comments = append(snap.Comments, *comment)
	}
	for postID, likes := range s.postLikes {
		for userID := range likes {
			snap.Likes = append(snap.Likes, Like{PostID: postID, UserID: userID})
		}
	}
	for userID, conn := range s.connections {
		for followed := range conn.following {
			snap.Edges = append(snap.Edges, Edge{Follower: userID, Followed: followed})
		}
		for blocked := range conn.blocked {
			snap.Blocks = append(snap.Blocks, Block{Blocker: userID, Blocked: blocked})
		}
	}
	for _, req := range s.requests {
		snap.Requests = append(snap.Requests, *req)
	}

	sort.Slice(snap.Accounts, func(i, j int) bool { return snap.Accounts[i].ID < snap.Accounts[j].ID })
	sort.Slice(snap.Profiles, func(i, j int) bool { return snap.Profiles[i].ID < snap.Profiles[j].ID })
	sort.Slice(snap.Posts, func(i, j int) bool { return snap.Posts[i].ID < snap.Posts[j].ID })
	sort.Slice(snap.Comments, func(i, j int) bool { return snap.Comments[i].ID < snap.Comments[j].ID })
	sort.Slice(snap.Requests, func(i, j int) bool { return snap.Requests[i].ID < snap.Requests[j].ID })
	sort.Slice(snap.Likes, func(i, j int) bool {
		if snap.Likes[i].PostID != snap.Likes[j].PostID {
			return snap.Likes[i].PostID < snap.Likes[j].PostID
		}
		return snap.Likes[i].UserID < snap.Likes[j].UserID
	})
	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].Follower != snap.Edges[j].Follower {
			return snap.Edges[i].Follower < snap.Edges[j].Follower
		}
		return snap.Edges[i].Followed < snap.Edges[j].Followed
	})
	sort.Slice(snap.Blocks, func(i, j int) bool {
		if snap.Blocks[i].Blocker != snap.Blocks[j].Blocker {
			return snap.Blocks[i].Blocker < snap.Blocks[j].Blocker
		}
		return snap.Blocks[i].Blocked < snap.Blocks[j].Blocked
	})

	return snap
}

// Restore replaces all state with the snapshot's image. Secondary
// indices are rebuilt from the authoritative relations, and derived
// counters are recomputed from the sets they cache, so the counter
// invariants hold by construction after a restart.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := New()
	s.accounts = fresh.accounts
	s.accountEmail = fresh.accountEmail
	s.users = fresh.users
	s.usernames = fresh.usernames
	s.posts = fresh.posts
	s.comments = fresh.comments
	s.userPosts = fresh.userPosts
	s.postLikes = fresh.postLikes
	s.postComments = fresh.postComments
	s.connections = fresh.connections
	s.requests = fresh.requests

	s.nextUserID = snap.NextUserID
	s.nextPostID = snap.NextPostID
	s.nextCommentID = snap.NextCommentID
	s.nextRequestID = snap.NextRequestID

	for _, acct := range snap.Accounts {
		a := acct
		s.accounts[a.ID] = &a
		s.accountEmail[a.Email] = a.ID
	}
	for _, profile := range snap.Profiles {
		p := profile
		p.FollowerCount = 0
		p.FollowingCount = 0
		p.PostCount = 0
		s.users[p.ID] = &p
		s.usernames[p.Username] = p.ID
	}

	// Posts arrive sorted by id; ids are monotonic, so append order
	// equals creation order.
	for _, post := range snap.Posts {
		p := post
		p.LikeCount = 0
		p.CommentCount = 0
		s.posts[p.ID] = &p
		s.userPosts[p.AuthorID] = append(s.userPosts[p.AuthorID], p.ID)
		s.postLikes[p.ID] = make(map[UserID]struct{})
		if profile, ok := s.users[p.AuthorID]; ok {
			profile.PostCount++
		}
	}
	for _, comment := range snap.Comments {
		c := comment
		s.comments[c.ID] = &c
		s.postComments[c.PostID] = append(s.postComments[c.PostID], c.ID)
		if post, ok := s.posts[c.PostID]; ok {
			post.CommentCount++
		}
	}
	for _, like := range snap.Likes {
		set, ok := s.postLikes[like.PostID]
		if !ok {
			continue
		}
		set[like.UserID] = struct{}{}
		s.posts[like.PostID].LikeCount++
	}
	for _, edge := range snap.Edges {
		s.conns(edge.Follower).following[edge.Followed] = struct{}{}
		s.conns(edge.Followed).followers[edge.Follower] = struct{}{}
		if profile, ok := s.users[edge.Follower]; ok {
			profile.FollowingCount++
		}
		if profile, ok := s.users[edge.Followed]; ok {
			profile.FollowerCount++
		}
	}
	for _, block := range snap.Blocks {
		s.conns(block.Blocker).blocked[block.Blocked] = struct{}{}
		s.conns(block.Blocked).blockedBy[block.Blocker] = struct{}{}
	}
	for _, req := range snap.Requests {
		r := req
		s.requests[r.ID] = &r
	}
}
