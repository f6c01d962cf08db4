package store

import "sort"

// GetFeed composes the viewer's paginated feed. It never mutates state.
//
// Candidate authors for an authenticated viewer are the viewer plus
// everyone they follow, minus anyone in a block relationship with the
// viewer in either direction. Anonymous viewers consider all authors;
// the visibility rule then keeps only public posts for them.
func (s *Store) GetFeed(viewer UserID, limit, offset int) []FeedEntry {
	limit = clampLimit(limit, DefaultFeedLimit, MaxFeedLimit)
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := s.candidateAuthors(viewer)

	var visible []*Post
	for _, author := range candidates {
		for _, postID := range s.userPosts[author] {
			post, ok := s.posts[postID]
			if ok && s.canViewPost(viewer, post) {
				visible = append(visible, post)
			}
		}
	}

	// Newest first; equal timestamps break ties by ascending PostID so
	// pagination is deterministic.
	sort.Slice(visible, func(i, j int) bool {
		if !visible[i].CreatedAt.Equal(visible[j].CreatedAt) {
			return visible[i].CreatedAt.After(visible[j].CreatedAt)
		}
		return visible[i].ID < visible[j].ID
	})

	if offset >= len(visible) {
		return []FeedEntry{}
	}
	visible = visible[offset:]
	if len(visible) > limit {
		visible = visible[:limit]
	}

	entries := make([]FeedEntry, 0, len(visible))
	for _, post := range visible {
		author, ok := s.users[post.AuthorID]
		if !ok {
			continue
		}
		isLiked := false
		if viewer != AnonymousUser {
			_, isLiked = s.postLikes[post.ID][viewer]
		}
		entries = append(entries, FeedEntry{
			Post:    *post,
			Author:  *author,
			IsLiked: isLiked,
		})
	}
	return entries
}

// candidateAuthors resolves whose posts may enter the feed. Caller must
// hold at least the read lock.
func (s *Store) candidateAuthors(viewer UserID) []UserID {
	if viewer == AnonymousUser {
		all := make([]UserID, 0, len(s.users))
		for id := range s.users {
			all = append(all, id)
		}
		return all
	}

	authors := []UserID{viewer}
	conn, ok := s.connections[viewer]
	if !ok {
		return authors
	}
	for followed := range conn.following {
		if _, blocked := conn.blocked[followed]; blocked {
			continue
		}
		if _, blockedBy := conn.blockedBy[followed]; blockedBy {
			continue
		}
		authors = append(authors, followed)
	}
	return authors
}
