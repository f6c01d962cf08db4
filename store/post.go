package store

import "decentra-social-network/validation"

// CreatePost validates content, lazily creates the author's profile and
// stores the post. Post IDs increase monotonically.
func (s *Store) CreatePost(caller UserID, content string, visibility PostVisibility) (Post, error) {
	if err := validation.PostContent(content); err != nil {
		return Post{}, err
	}
	if visibility == "" {
		visibility = PostPublic
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	author := s.ensureProfile(caller)

	id := PostID(s.nextPostID)
	s.nextPostID++

	now := s.now()
	post := &Post{
		ID:         id,
		AuthorID:   caller,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
		Visibility: visibility,
	}
	s.posts[id] = post
	s.postLikes[id] = make(map[UserID]struct{})
	s.postComments[id] = nil
	s.userPosts[caller] = append(s.userPosts[caller], id)

	author.PostCount++
	author.UpdatedAt = now

	return *post, nil
}

// GetPost returns a post if it exists and the viewer may see it.
func (s *Store) GetPost(viewer UserID, postID PostID) (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[postID]
	if !ok || !s.canViewPost(viewer, post) {
		return Post{}, false
	}
	return *post, true
}

// GetUserPosts returns one author's visible posts, newest first.
func (s *Store) GetUserPosts(viewer, author UserID, limit, offset int) []Post {
	limit = clampLimit(limit, DefaultFeedLimit, MaxFeedLimit)
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.userPosts[author]
	posts := make([]Post, 0, limit)
	skipped := 0
	for i := len(ids) - 1; i >= 0 && len(posts) < limit; i-- {
		post, ok := s.posts[ids[i]]
		if !ok || !s.canViewPost(viewer, post) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		posts = append(posts, *post)
	}
	return posts
}

// LikePost records a like. A user can like a post at most once.
func (s *Store) LikePost(caller UserID, postID PostID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return ErrPostNotFound
	}

	likes := s.postLikes[postID]
	if _, liked := likes[caller]; liked {
		return ErrAlreadyLiked
	}

	likes[caller] = struct{}{}
	post.LikeCount++
	post.UpdatedAt = s.now()
	return nil
}

// UnlikePost removes a like.
func (s *Store) UnlikePost(caller UserID, postID PostID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return ErrPostNotFound
	}

	likes := s.postLikes[postID]
	if _, liked := likes[caller]; !liked {
		return ErrNotLiked
	}

	delete(likes, caller)
	if post.LikeCount > 0 {
		post.LikeCount--
	}
	post.UpdatedAt = s.now()
	return nil
}

// AddComment validates and appends a comment to a post. Comment IDs
// increase monotonically.
func (s *Store) AddComment(caller UserID, postID PostID, content string) (Comment, error) {
	if err := validation.CommentContent(content); err != nil {
		return Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return Comment{}, ErrPostNotFound
	}

	id := CommentID(s.nextCommentID)
	s.nextCommentID++

	now := s.now()
	comment := &Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  caller,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments[id] = comment
	s.postComments[postID] = append(s.postComments[postID], id)

	post.CommentCount++
	post.UpdatedAt = now

	return *comment, nil
}

// GetPostComments returns a post's comments in creation order.
func (s *Store) GetPostComments(postID PostID, limit, offset int) []Comment {
	limit = clampLimit(limit, DefaultCommentsLimit, MaxCommentsLimit)
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.postComments[postID]
	if offset >= len(ids) {
		return []Comment{}
	}
	ids = ids[offset:]
	if len(ids) > limit {
		ids = ids[:limit]
	}

	comments := make([]Comment, 0, len(ids))
	for _, id := range ids {
		if comment, ok := s.comments[id]; ok {
			comments = append(comments, *comment)
		}
	}
	return comments
}

// PlatformStats returns whole-network totals.
func (s *Store) PlatformStats() PlatformStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totalLikes int64
	for _, post := range s.posts {
		totalLikes += post.LikeCount
	}
	return PlatformStats{
		TotalUsers:    int64(len(s.users)),
		TotalPosts:    int64(len(s.posts)),
		TotalLikes:    totalLikes,
		TotalComments: int64(len(s.comments)),
	}
}

// canViewPost applies the three-way visibility rule. Caller must hold at
// least the read lock.
func (s *Store) canViewPost(viewer UserID, post *Post) bool {
	switch post.Visibility {
	case PostPublic:
		return true
	case PostFollowersOnly:
		if viewer == AnonymousUser {
			return false
		}
		if viewer == post.AuthorID {
			return true
		}
		conn, ok := s.connections[post.AuthorID]
		if !ok {
			return false
		}
		_, follows := conn.followers[viewer]
		return follows
	case PostUnlisted:
		return viewer != AnonymousUser && viewer == post.AuthorID
	}
	return false
}

// clampLimit applies a default for non-positive limits and a hard cap
// for oversized ones.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
