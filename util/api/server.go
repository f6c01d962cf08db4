// Package api exposes the social-network store over HTTP. Handlers
// decode a request, call one store operation with the caller id resolved
// by the middleware, and map the store's error values to status codes.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"decentra-social-network/ratelimit"
	"decentra-social-network/store"
	"decentra-social-network/util"
	"decentra-social-network/validation"
)

// Server bundles the state engine with its collaborators. No handler
// touches shared state except through these.
type Server struct {
	Store    *store.Store
	Sessions *util.Sessions
	Limits   *ratelimit.Limiter
	Hub      *Hub
}

// NewServer wires a server around an existing store.
func NewServer(st *store.Store, sessions *util.Sessions) *Server {
	return &Server{
		Store:    st,
		Sessions: sessions,
		Limits:   ratelimit.New(),
		Hub:      NewHub(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps store/validation error values onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalid),
		errors.Is(err, store.ErrSelfFollow),
		errors.Is(err, store.ErrSelfBlock):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrPostNotFound),
		errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrRequestNotFound),
		errors.Is(err, store.ErrNotFollowing),
		errors.Is(err, store.ErrNotBlocked):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrProfileExists),
		errors.Is(err, store.ErrEmailTaken),
		errors.Is(err, store.ErrUsernameTaken),
		errors.Is(err, store.ErrAlreadyFollowing),
		errors.Is(err, store.ErrAlreadyBlocked),
		errors.Is(err, store.ErrDuplicateRequest),
		errors.Is(err, store.ErrRequestNotPending),
		errors.Is(err, store.ErrAlreadyLiked),
		errors.Is(err, store.ErrNotLiked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrNotRequestTarget),
		errors.Is(err, store.ErrBlocked),
		errors.Is(err, store.ErrPrivateGraph):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, store.ErrFollowingLimit),
		errors.Is(err, store.ErrPendingLimit),
		errors.Is(err, ratelimit.ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// pathID parses a positive integer path segment.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name + " in URL path")
	}
	return id, nil
}

// pagination reads limit/offset query parameters. Zero limit means the
// store default; the store enforces the hard cap regardless.
func pagination(r *http.Request) (limit, offset int) {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
