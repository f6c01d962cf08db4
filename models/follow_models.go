package models

// FollowUserRequest is the optional body for a follow attempt. The
// message is carried on the follow request when the target is not
// public.
type FollowUserRequest struct {
	Message string `json:"message,omitempty"`
}

// FollowStatusResponse indicates how a follow or unfollow resolved.
type FollowStatusResponse struct {
	TargetUserID int64  `json:"target_user_id"`
	Status       string `json:"status"` // following, pending, not_following
	RequestID    int64  `json:"request_id,omitempty"`
	Message      string `json:"message,omitempty"`
}

// IsFollowingResponse answers an is-following query.
type IsFollowingResponse struct {
	FollowerID int64 `json:"follower_id"`
	TargetID   int64 `json:"target_id"`
	Following  bool  `json:"following"`
}
