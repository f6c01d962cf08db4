package api

import (
	"net/http"

	"decentra-social-network/middleware"
)

// GetFeed returns the caller's paginated feed. Anonymous callers get the
// public-only view.
func (s *Server) GetFeed(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	entries := s.Store.GetFeed(middleware.CallerID(r), limit, offset)
	writeJSON(w, http.StatusOK, entries)
}

// GetPlatformStats returns whole-network totals.
func (s *Server) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.PlatformStats())
}

// Health is a liveness probe.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
