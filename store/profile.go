package store

import (
	"fmt"

	"decentra-social-network/validation"
)

// CreateProfile creates the caller's profile with default privacy
// settings. Each account gets at most one profile.
func (s *Store) CreateProfile(caller UserID, username, bio, avatar string) (Profile, error) {
	if err := validation.Username(username); err != nil {
		return Profile{}, err
	}
	if err := validation.Bio(bio); err != nil {
		return Profile{}, err
	}
	if err := validation.Avatar(avatar); err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[caller]; exists {
		return Profile{}, ErrProfileExists
	}
	if owner, taken := s.usernames[username]; taken && owner != caller {
		return Profile{}, ErrUsernameTaken
	}

	now := s.now()
	profile := &Profile{
		ID:                 caller,
		Username:           username,
		Bio:                bio,
		Avatar:             avatar,
		CreatedAt:          now,
		UpdatedAt:          now,
		PrivacySettings:    defaultPrivacySettings(),
		VerificationStatus: Unverified,
	}
	s.users[caller] = profile
	s.usernames[username] = caller
	if _, ok := s.userPosts[caller]; !ok {
		s.userPosts[caller] = nil
	}

	return *profile, nil
}

// UpdateProfile replaces the caller's username, bio and avatar.
// CreatedAt and all derived counters are preserved.
func (s *Store) UpdateProfile(caller UserID, username, bio, avatar string) (Profile, error) {
	if err := validation.Username(username); err != nil {
		return Profile{}, err
	}
	if err := validation.Bio(bio); err != nil {
		return Profile{}, err
	}
	if err := validation.Avatar(avatar); err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.users[caller]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	if owner, taken := s.usernames[username]; taken && owner != caller {
		return Profile{}, ErrUsernameTaken
	}

	delete(s.usernames, profile.Username)
	profile.Username = username
	profile.Bio = bio
	profile.Avatar = avatar
	profile.UpdatedAt = s.now()
	s.usernames[username] = caller

	return *profile, nil
}

// UpdatePrivacySettings replaces the caller's privacy settings.
func (s *Store) UpdatePrivacySettings(caller UserID, settings PrivacySettings) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.users[caller]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}

	profile.PrivacySettings = settings
	profile.UpdatedAt = s.now()
	return *profile, nil
}

// GetProfile returns a user's profile, or false if none exists.
func (s *Store) GetProfile(userID UserID) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.users[userID]
	if !ok {
		return Profile{}, false
	}
	return *profile, true
}

// CheckUsernameAvailability reports whether a username is free. A
// validation error means the format itself is invalid.
func (s *Store) CheckUsernameAvailability(username string) (bool, error) {
	if err := validation.Username(username); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, taken := s.usernames[username]
	return !taken, nil
}

// ensureProfile creates a default profile on first post for accounts
// that never ran CreateProfile. Caller must hold the write lock.
func (s *Store) ensureProfile(userID UserID) *Profile {
	if profile, ok := s.users[userID]; ok {
		return profile
	}

	username := fmt.Sprintf("user_%d", userID)
	for {
		if _, taken := s.usernames[username]; !taken {
			break
		}
		username += "0"
	}

	now := s.now()
	profile := &Profile{
		ID:                 userID,
		Username:           username,
		Bio:                "New deCentra user",
		Avatar:             "",
		CreatedAt:          now,
		UpdatedAt:          now,
		PrivacySettings:    defaultPrivacySettings(),
		VerificationStatus: Unverified,
	}
	s.users[userID] = profile
	s.usernames[username] = userID
	return profile
}
