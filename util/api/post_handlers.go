package api

import (
	"encoding/json"
	"net/http"

	"decentra-social-network/middleware"
	"decentra-social-network/models"
	"decentra-social-network/ratelimit"
	"decentra-social-network/store"
)

// CreatePost creates a post for the caller, subject to the post rate
// limit.
func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	if err := s.Limits.Allow(int64(caller), "create_post", ratelimit.CreatePost); err != nil {
		writeError(w, err)
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	visibility := store.PostVisibility(req.Visibility)
	switch visibility {
	case "", store.PostPublic, store.PostFollowersOnly, store.PostUnlisted:
	default:
		http.Error(w, "Unknown visibility value", http.StatusBadRequest)
		return
	}

	post, err := s.Store.CreatePost(caller, req.Content, visibility)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// GetPost returns one post if the caller may view it.
func (s *Server) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, ok := s.Store.GetPost(middleware.CallerID(r), store.PostID(postID))
	if !ok {
		writeError(w, store.ErrPostNotFound)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetUserPosts returns one author's posts visible to the caller, newest
// first.
func (s *Server) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit, offset := pagination(r)
	posts := s.Store.GetUserPosts(middleware.CallerID(r), store.UserID(userID), limit, offset)
	writeJSON(w, http.StatusOK, posts)
}

// LikePost records the caller's like and notifies the author.
func (s *Server) LikePost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	postID, err := pathID(r, "postID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.Limits.Allow(int64(caller), "like_post", ratelimit.LikePost); err != nil {
		writeError(w, err)
		return
	}

	if err := s.Store.LikePost(caller, store.PostID(postID)); err != nil {
		writeError(w, err)
		return
	}

	if post, ok := s.Store.GetPost(caller, store.PostID(postID)); ok && post.AuthorID != caller {
		s.Hub.NotifyUser(post.AuthorID, Notification{
			Type:    NotifyPostLiked,
			ActorID: int64(caller),
			PostID:  postID,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnlikePost removes the caller's like.
func (s *Server) UnlikePost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	postID, err := pathID(r, "postID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.Store.UnlikePost(caller, store.PostID(postID)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddComment appends a comment to a post and notifies the author.
func (s *Server) AddComment(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	postID, err := pathID(r, "postID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.Limits.Allow(int64(caller), "add_comment", ratelimit.AddComment); err != nil {
		writeError(w, err)
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := s.Store.AddComment(caller, store.PostID(postID), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	if post, ok := s.Store.GetPost(caller, store.PostID(postID)); ok && post.AuthorID != caller {
		s.Hub.NotifyUser(post.AuthorID, Notification{
			Type:    NotifyPostCommented,
			ActorID: int64(caller),
			PostID:  postID,
		})
	}
	writeJSON(w, http.StatusCreated, comment)
}

// GetPostComments returns a post's comments in creation order.
func (s *Server) GetPostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, ok := s.Store.GetPost(middleware.CallerID(r), store.PostID(postID)); !ok {
		writeError(w, store.ErrPostNotFound)
		return
	}

	limit, offset := pagination(r)
	comments := s.Store.GetPostComments(store.PostID(postID), limit, offset)
	writeJSON(w, http.StatusOK, comments)
}
