package models

// CreatePostRequest is the body for creating a post. Visibility defaults
// to public when omitted.
type CreatePostRequest struct {
	Content    string `json:"content"`
	Visibility string `json:"visibility,omitempty"` // public, followers_only, unlisted
}

// CreateCommentRequest is the body for commenting on a post.
type CreateCommentRequest struct {
	Content string `json:"content"`
}
