package api

import (
	"net/http"

	"decentra-social-network/middleware"
)

// Routes builds the full endpoint mux. Reads go through OptionalAuth so
// anonymous callers get public-only filtering; writes require a session.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.Health)
	mux.HandleFunc("POST /register", s.Register)
	mux.HandleFunc("POST /login", s.Login)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("GET /username-available", s.CheckUsername)
	mux.HandleFunc("GET /stats", s.GetPlatformStats)

	optional := func(h http.HandlerFunc) http.Handler {
		return middleware.OptionalAuth(s.Sessions, h)
	}
	mux.Handle("GET /feed", optional(s.GetFeed))
	mux.Handle("GET /posts/{postID}", optional(s.GetPost))
	mux.Handle("GET /posts/{postID}/comments", optional(s.GetPostComments))
	mux.Handle("GET /users/{userID}", optional(s.GetProfile))
	mux.Handle("GET /users/{userID}/posts", optional(s.GetUserPosts))
	mux.Handle("GET /users/{userID}/followers", optional(s.GetFollowers))
	mux.Handle("GET /users/{userID}/following", optional(s.GetFollowing))

	required := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(s.Sessions, h)
	}
	mux.Handle("POST /profile", required(s.CreateProfile))
	mux.Handle("PUT /profile", required(s.UpdateProfile))
	mux.Handle("GET /profile", required(s.MyProfile))
	mux.Handle("PUT /profile/privacy", required(s.UpdatePrivacySettings))
	mux.Handle("POST /posts", required(s.CreatePost))
	mux.Handle("POST /posts/{postID}/like", required(s.LikePost))
	mux.Handle("DELETE /posts/{postID}/like", required(s.UnlikePost))
	mux.Handle("POST /posts/{postID}/comments", required(s.AddComment))
	mux.Handle("POST /users/{userID}/follow", required(s.FollowUser))
	mux.Handle("DELETE /users/{userID}/follow", required(s.UnfollowUser))
	mux.Handle("GET /users/{userID}/is-following", required(s.IsFollowing))
	mux.Handle("GET /follow-requests", required(s.PendingFollowRequests))
	mux.Handle("POST /follow-requests/{requestID}/approve", required(s.ApproveFollowRequest))
	mux.Handle("POST /follow-requests/{requestID}/reject", required(s.RejectFollowRequest))
	mux.Handle("POST /follow-requests/{requestID}/cancel", required(s.CancelFollowRequest))
	mux.Handle("GET /ws/notifications", required(s.Notifications))

	return mux
}
