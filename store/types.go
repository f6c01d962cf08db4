package store

import "time"

// UserID identifies an account. IDs are allocated monotonically at
// registration and never reused.
type UserID int64

// AnonymousUser is the sentinel viewer for unauthenticated read queries.
const AnonymousUser UserID = 0

// PostID identifies a post.
type PostID int64

// CommentID identifies a comment.
type CommentID int64

// RequestID identifies a follow request.
type RequestID int64

// ProfileVisibility controls who can view a user's profile.
type ProfileVisibility string

const (
	ProfilePublic        ProfileVisibility = "public"
	ProfileFollowersOnly ProfileVisibility = "followers_only"
	ProfilePrivate       ProfileVisibility = "private"
)

// PostVisibility controls who can view a post.
type PostVisibility string

const (
	PostPublic        PostVisibility = "public"
	PostFollowersOnly PostVisibility = "followers_only"
	PostUnlisted      PostVisibility = "unlisted"
)

// VerificationStatus marks the trust level of an account.
type VerificationStatus string

const (
	Unverified    VerificationStatus = "unverified"
	Verified      VerificationStatus = "verified"
	Organization  VerificationStatus = "organization"
	Journalist    VerificationStatus = "journalist"
	Whistleblower VerificationStatus = "whistleblower"
)

// RequestStatus is the state of a follow request. Pending is the only
// non-terminal state.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// Content and pagination limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxBioLength      = 500
	MaxAvatarLength   = 200
	MinPostContent    = 1
	MaxPostContent    = 10000
	MinCommentContent = 1
	MaxCommentContent = 500

	DefaultFeedLimit        = 10
	MaxFeedLimit            = 50
	DefaultCommentsLimit    = 20
	MaxCommentsLimit        = 100
	DefaultConnectionsLimit = 20
	MaxConnectionsLimit     = 100

	// MaxFollowing caps the size of any user's following set.
	MaxFollowing = 5000
	// MaxPendingRequests caps outstanding requests per requester.
	MaxPendingRequests = 100
)

// Account holds login credentials. Profiles are a separate record: an
// account may exist without a profile until the first profile action.
type Account struct {
	ID           UserID    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PrivacySettings controls profile and social-graph visibility.
type PrivacySettings struct {
	ProfileVisibility ProfileVisibility `json:"profile_visibility"`
	ShowSocialGraph   bool              `json:"show_social_graph"`
}

func defaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		ProfileVisibility: ProfilePublic,
		ShowSocialGraph:   true,
	}
}

// Profile is a user's public presence. FollowerCount, FollowingCount and
// PostCount are caches derived from the authoritative sets; they are only
// updated in the same critical section as the underlying set mutation.
type Profile struct {
	ID                 UserID             `json:"id"`
	Username           string             `json:"username"`
	Bio                string             `json:"bio"`
	Avatar             string             `json:"avatar"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	FollowerCount      int64              `json:"follower_count"`
	FollowingCount     int64              `json:"following_count"`
	PostCount          int64              `json:"post_count"`
	PrivacySettings    PrivacySettings    `json:"privacy_settings"`
	VerificationStatus VerificationStatus `json:"verification_status"`
}

// Post is a single piece of content. LikeCount and CommentCount are
// derived caches, maintained in lockstep with the like set and comment
// list.
type Post struct {
	ID           PostID         `json:"id"`
	AuthorID     UserID         `json:"author_id"`
	Content      string         `json:"content"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	LikeCount    int64          `json:"like_count"`
	CommentCount int64          `json:"comment_count"`
	Visibility   PostVisibility `json:"visibility"`
}

// Comment on a post.
type Comment struct {
	ID        CommentID `json:"id"`
	PostID    PostID    `json:"post_id"`
	AuthorID  UserID    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowRequest is a pending-approval edge for non-public targets.
type FollowRequest struct {
	ID        RequestID     `json:"id"`
	Requester UserID        `json:"requester"`
	Target    UserID        `json:"target"`
	CreatedAt time.Time     `json:"created_at"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message,omitempty"`
}

// connections holds the four per-user edge sets. Entries are created
// lazily on first graph interaction.
type connections struct {
	following map[UserID]struct{}
	followers map[UserID]struct{}
	blocked   map[UserID]struct{}
	blockedBy map[UserID]struct{}
}

func newConnections() *connections {
	return &connections{
		following: make(map[UserID]struct{}),
		followers: make(map[UserID]struct{}),
		blocked:   make(map[UserID]struct{}),
		blockedBy: make(map[UserID]struct{}),
	}
}

// FeedEntry is one feed page row: a post plus a snapshot of its author
// and the viewer's like state at query time.
type FeedEntry struct {
	Post    Post    `json:"post"`
	Author  Profile `json:"author"`
	IsLiked bool    `json:"is_liked"`
}

// PlatformStats are whole-network totals.
type PlatformStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}
