package store

import "sort"

// FollowOutcome reports how a follow attempt resolved: an immediate edge
// for public targets, or a pending request otherwise.
type FollowOutcome struct {
	Followed bool           `json:"followed"`
	Request  *FollowRequest `json:"request,omitempty"`
}

// Follow creates a follow edge to a public target, or a pending follow
// request to a followers-only/private one. It is the only public entry
// point for growing the graph.
func (s *Store) Follow(follower, target UserID, message string) (FollowOutcome, error) {
	if follower == target {
		return FollowOutcome{}, ErrSelfFollow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	targetProfile, ok := s.users[target]
	if !ok {
		return FollowOutcome{}, ErrProfileNotFound
	}

	if s.hasEdge(follower, target) {
		return FollowOutcome{}, ErrAlreadyFollowing
	}
	if conn, ok := s.connections[target]; ok {
		if _, blocked := conn.blocked[follower]; blocked {
			return FollowOutcome{}, ErrBlocked
		}
	}
	if conn, ok := s.connections[follower]; ok {
		if len(conn.following) >= MaxFollowing {
			return FollowOutcome{}, ErrFollowingLimit
		}
	}

	if targetProfile.PrivacySettings.ProfileVisibility == ProfilePublic {
		s.executeFollow(follower, target)
		return FollowOutcome{Followed: true}, nil
	}

	request, err := s.createFollowRequest(follower, target, message)
	if err != nil {
		return FollowOutcome{}, err
	}
	return FollowOutcome{Request: &request}, nil
}

// Unfollow removes an existing edge and decrements both counters.
func (s *Store) Unfollow(follower, target UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[target]; !ok {
		return ErrProfileNotFound
	}

	conn, ok := s.connections[follower]
	if !ok {
		return ErrNotFollowing
	}
	if _, following := conn.following[target]; !following {
		return ErrNotFollowing
	}

	s.executeUnfollow(follower, target)
	return nil
}

// Block severs the relationship in both directions: any existing edge
// either way is force-removed before the block is recorded. Not exposed
// on the HTTP surface yet.
func (s *Store) Block(blocker, target UserID) error {
	if blocker == target {
		return ErrSelfBlock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[target]; !ok {
		return ErrProfileNotFound
	}

	conn := s.conns(blocker)
	if _, blocked := conn.blocked[target]; blocked {
		return ErrAlreadyBlocked
	}

	if _, following := conn.following[target]; following {
		s.executeUnfollow(blocker, target)
	}
	if _, followedBy := conn.followers[target]; followedBy {
		s.executeUnfollow(target, blocker)
	}

	conn.blocked[target] = struct{}{}
	s.conns(target).blockedBy[blocker] = struct{}{}
	return nil
}

// Unblock removes a block. Severed edges are not restored.
func (s *Store) Unblock(blocker, target UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.connections[blocker]
	if !ok {
		return ErrNotBlocked
	}
	if _, blocked := conn.blocked[target]; !blocked {
		return ErrNotBlocked
	}

	delete(conn.blocked, target)
	if targetConn, ok := s.connections[target]; ok {
		delete(targetConn.blockedBy, blocker)
	}
	return nil
}

// IsFollowing reports whether follower currently follows target.
func (s *Store) IsFollowing(follower, target UserID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conn, ok := s.connections[follower]
	if !ok {
		return false
	}
	_, following := conn.following[target]
	return following
}

// GetFollowing returns profiles the user follows, ordered by UserID.
// Fails with ErrPrivateGraph when the user hides their social graph from
// other viewers.
func (s *Store) GetFollowing(caller, userID UserID, limit, offset int) ([]Profile, error) {
	return s.connectionPage(caller, userID, limit, offset, func(c *connections) map[UserID]struct{} {
		return c.following
	})
}

// GetFollowers returns profiles following the user, ordered by UserID.
func (s *Store) GetFollowers(caller, userID UserID, limit, offset int) ([]Profile, error) {
	return s.connectionPage(caller, userID, limit, offset, func(c *connections) map[UserID]struct{} {
		return c.followers
	})
}

func (s *Store) connectionPage(caller, userID UserID, limit, offset int, pick func(*connections) map[UserID]struct{}) ([]Profile, error) {
	limit = clampLimit(limit, DefaultConnectionsLimit, MaxConnectionsLimit)
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	target, ok := s.users[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	if !target.PrivacySettings.ShowSocialGraph && caller != userID {
		return nil, ErrPrivateGraph
	}

	conn, ok := s.connections[userID]
	if !ok {
		return []Profile{}, nil
	}

	set := pick(conn)
	ids := make([]UserID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset >= len(ids) {
		return []Profile{}, nil
	}
	ids = ids[offset:]
	if len(ids) > limit {
		ids = ids[:limit]
	}

	profiles := make([]Profile, 0, len(ids))
	for _, id := range ids {
		if profile, ok := s.users[id]; ok {
			profiles = append(profiles, *profile)
		}
	}
	return profiles, nil
}

// hasEdge reports whether the follow edge already exists. Caller must
// hold at least the read lock.
func (s *Store) hasEdge(follower, target UserID) bool {
	conn, ok := s.connections[follower]
	if !ok {
		return false
	}
	_, following := conn.following[target]
	return following
}

// executeFollow is the single mutation point allowed to create an edge:
// both set entries, both counters and both updated_at stamps change in
// one step. Caller must hold the write lock and have run Follow's
// precondition checks (or be the approval path).
func (s *Store) executeFollow(follower, target UserID) {
	s.conns(follower).following[target] = struct{}{}
	s.conns(target).followers[follower] = struct{}{}

	now := s.now()
	followerProfile := s.ensureProfile(follower)
	followerProfile.FollowingCount++
	followerProfile.UpdatedAt = now

	targetProfile := s.ensureProfile(target)
	targetProfile.FollowerCount++
	targetProfile.UpdatedAt = now
}

// executeUnfollow removes the edge and decrements both counters,
// saturating at zero. Caller must hold the write lock.
func (s *Store) executeUnfollow(follower, target UserID) {
	if conn, ok := s.connections[follower]; ok {
		delete(conn.following, target)
	}
	if conn, ok := s.connections[target]; ok {
		delete(conn.followers, follower)
	}

	now := s.now()
	if profile, ok := s.users[follower]; ok {
		if profile.FollowingCount > 0 {
			profile.FollowingCount--
		}
		profile.UpdatedAt = now
	}
	if profile, ok := s.users[target]; ok {
		if profile.FollowerCount > 0 {
			profile.FollowerCount--
		}
		profile.UpdatedAt = now
	}
}
