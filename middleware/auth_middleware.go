package middleware

import (
	"context"
	"log"
	"net/http"

	"decentra-social-network/store"
	"decentra-social-network/util"
)

// UserIDKeyType is the dedicated context-key type for auth values, so
// entries cannot collide with other packages' string keys.
type UserIDKeyType string

// UserIDKey stores the caller's UserID in the request context.
const UserIDKey UserIDKeyType = "userID"

// RequireAuth rejects requests without a valid session and injects the
// resolved UserID into the request context for downstream handlers.
func RequireAuth(sessions *util.Sessions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := sessions.UserIDFromRequest(r)
		if userID == store.AnonymousUser {
			log.Printf("Unauthorized access attempt from %s to %s", r.RemoteAddr, r.URL.Path)
			http.Error(w, "Unauthorized: You must be logged in.", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth resolves the caller when a session exists but lets
// anonymous requests through. Read endpoints use it so the store can
// apply anonymous-viewer filtering.
func OptionalAuth(sessions *util.Sessions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := sessions.UserIDFromRequest(r)
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerID reads the UserID the auth middleware stored in the context.
// Returns AnonymousUser when no session was resolved.
func CallerID(r *http.Request) store.UserID {
	userID, ok := r.Context().Value(UserIDKey).(store.UserID)
	if !ok {
		return store.AnonymousUser
	}
	return userID
}
