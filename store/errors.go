package store

import "errors"

// Every failure mode is returned as a value; nothing here is transient,
// so callers must change input or wait for external state before
// retrying.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrAccountNotFound = errors.New("account not found")

	ErrProfileExists = errors.New("user profile already exists")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")

	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrSelfBlock        = errors.New("cannot block yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrBlocked          = errors.New("user has blocked you")
	ErrAlreadyBlocked   = errors.New("user is already blocked")
	ErrNotBlocked       = errors.New("user is not blocked")

	ErrFollowingLimit = errors.New("following limit exceeded")
	ErrPendingLimit   = errors.New("too many pending follow requests")

	ErrRequestNotFound   = errors.New("follow request not found")
	ErrDuplicateRequest  = errors.New("follow request already pending")
	ErrNotRequestTarget  = errors.New("not authorized to act on this request")
	ErrRequestNotPending = errors.New("follow request is not pending")

	ErrAlreadyLiked = errors.New("already liked this post")
	ErrNotLiked     = errors.New("haven't liked this post")

	ErrPrivateGraph = errors.New("social graph is private")
)
