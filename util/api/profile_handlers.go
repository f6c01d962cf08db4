package api

import (
	"encoding/json"
	"net/http"

	"decentra-social-network/middleware"
	"decentra-social-network/models"
	"decentra-social-network/store"
)

// CreateProfile creates the caller's profile.
func (s *Server) CreateProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := s.Store.CreateProfile(caller, req.Username, req.Bio, req.Avatar)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// UpdateProfile replaces the caller's username, bio and avatar.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := s.Store.UpdateProfile(caller, req.Username, req.Bio, req.Avatar)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// MyProfile returns the caller's own profile.
func (s *Server) MyProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	profile, ok := s.Store.GetProfile(caller)
	if !ok {
		writeError(w, store.ErrProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GetProfile returns any user's profile by id.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, ok := s.Store.GetProfile(store.UserID(userID))
	if !ok {
		writeError(w, store.ErrProfileNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdatePrivacySettings changes the caller's profile visibility and
// social-graph exposure.
func (s *Server) UpdatePrivacySettings(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	var req models.PrivacySettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	settings := store.PrivacySettings{
		ProfileVisibility: store.ProfileVisibility(req.ProfileVisibility),
		ShowSocialGraph:   req.ShowSocialGraph,
	}
	switch settings.ProfileVisibility {
	case store.ProfilePublic, store.ProfileFollowersOnly, store.ProfilePrivate:
	default:
		http.Error(w, "Unknown profile_visibility value", http.StatusBadRequest)
		return
	}

	profile, err := s.Store.UpdatePrivacySettings(caller, settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// CheckUsername reports whether a username is valid and unclaimed.
func (s *Server) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	available, err := s.Store.CheckUsernameAvailability(username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.UsernameAvailabilityResponse{
		Username:  username,
		Available: available,
	})
}
