package api

import (
	"encoding/json"
	"io"
	"net/http"

	"decentra-social-network/middleware"
	"decentra-social-network/models"
	"decentra-social-network/store"
)

// FollowUser follows a public target immediately or files a follow
// request for a non-public one. The optional body carries a message for
// the request.
func (s *Server) FollowUser(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	targetID, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req models.FollowUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	outcome, err := s.Store.Follow(caller, store.UserID(targetID), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := models.FollowStatusResponse{TargetUserID: targetID}
	if outcome.Followed {
		resp.Status = "following"
		s.Hub.NotifyUser(store.UserID(targetID), Notification{
			Type:    NotifyNewFollower,
			ActorID: int64(caller),
		})
	} else {
		resp.Status = "pending"
		resp.RequestID = int64(outcome.Request.ID)
		resp.Message = outcome.Request.Message
		s.Hub.NotifyUser(store.UserID(targetID), Notification{
			Type:    NotifyFollowRequest,
			ActorID: int64(caller),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// UnfollowUser removes the caller's follow edge to the target.
func (s *Server) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	targetID, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.Store.Unfollow(caller, store.UserID(targetID)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.FollowStatusResponse{
		TargetUserID: targetID,
		Status:       "not_following",
	})
}

// IsFollowing reports whether the caller follows the target.
func (s *Server) IsFollowing(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	targetID, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, models.IsFollowingResponse{
		FollowerID: int64(caller),
		TargetID:   targetID,
		Following:  s.Store.IsFollowing(caller, store.UserID(targetID)),
	})
}

// GetFollowers returns a page of the user's followers.
func (s *Server) GetFollowers(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit, offset := pagination(r)
	profiles, err := s.Store.GetFollowers(middleware.CallerID(r), store.UserID(userID), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// GetFollowing returns a page of the users this user follows.
func (s *Server) GetFollowing(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit, offset := pagination(r)
	profiles, err := s.Store.GetFollowing(middleware.CallerID(r), store.UserID(userID), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// PendingFollowRequests lists pending requests targeting the caller,
// oldest first.
func (s *Server) PendingFollowRequests(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)
	requests := s.Store.PendingFollowRequests(caller)
	if requests == nil {
		requests = []store.FollowRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

// ApproveFollowRequest accepts a pending request addressed to the
// caller, creating the edge.
func (s *Server) ApproveFollowRequest(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	requestID, err := pathID(r, "requestID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	request, err := s.Store.ApproveFollowRequest(caller, store.RequestID(requestID))
	if err != nil {
		writeError(w, err)
		return
	}

	s.Hub.NotifyUser(request.Requester, Notification{
		Type:    NotifyFollowRequestAccepted,
		ActorID: int64(caller),
	})
	writeJSON(w, http.StatusOK, request)
}

// RejectFollowRequest declines a pending request addressed to the
// caller. No edge is created.
func (s *Server) RejectFollowRequest(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	requestID, err := pathID(r, "requestID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	request, err := s.Store.RejectFollowRequest(caller, store.RequestID(requestID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// CancelFollowRequest withdraws the caller's own pending request.
func (s *Server) CancelFollowRequest(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	requestID, err := pathID(r, "requestID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	request, err := s.Store.CancelFollowRequest(caller, store.RequestID(requestID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
