package store

import "strings"

// RegisterAccount allocates a new UserID for the given credentials. The
// password must already be hashed by the caller; the store never sees
// plaintext.
func (s *Store) RegisterAccount(email, passwordHash string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.accountEmail[email]; taken {
		return Account{}, ErrEmailTaken
	}

	id := UserID(s.nextUserID)
	s.nextUserID++

	acct := &Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	s.accounts[id] = acct
	s.accountEmail[email] = id

	return *acct, nil
}

// AccountByEmail looks up login credentials.
func (s *Store) AccountByEmail(email string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountEmail[email]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return *s.accounts[id], nil
}

// AccountExists reports whether the UserID belongs to a registered
// account. Sessions use it to drop tokens for removed users.
func (s *Store) AccountExists(id UserID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[id]
	return ok
}
