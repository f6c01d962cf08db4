package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"decentra-social-network/middleware"
	"decentra-social-network/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Notification is a best-effort push to a connected client. Delivery is
// never guaranteed; clients reconcile through the read endpoints.
type Notification struct {
	Type    string `json:"type"`
	ActorID int64  `json:"actor_id"`
	PostID  int64  `json:"post_id,omitempty"`
}

// Notification types.
const (
	NotifyNewFollower           = "new_follower"
	NotifyFollowRequest         = "follow_request"
	NotifyFollowRequestAccepted = "follow_request_accepted"
	NotifyPostLiked             = "post_liked"
	NotifyPostCommented         = "post_commented"
)

// Hub tracks one WebSocket connection per user. A new connection for a
// user replaces the old one.
type Hub struct {
	mu    sync.Mutex
	conns map[store.UserID]*websocket.Conn
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[store.UserID]*websocket.Conn)}
}

func (h *Hub) register(userID store.UserID, conn *websocket.Conn) {
	h.mu.Lock()
	if old, ok := h.conns[userID]; ok {
		old.Close()
	}
	h.conns[userID] = conn
	h.mu.Unlock()
}

func (h *Hub) unregister(userID store.UserID, conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[userID] == conn {
		delete(h.conns, userID)
	}
	h.mu.Unlock()
}

// NotifyUser pushes a notification to the user's connection if one is
// open. A write failure drops the connection.
func (h *Hub) NotifyUser(userID store.UserID, n Notification) {
	h.mu.Lock()
	conn, ok := h.conns[userID]
	h.mu.Unlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(n); err != nil {
		log.Printf("Error writing notification to user %d: %v", userID, err)
		conn.Close()
		h.unregister(userID, conn)
	}
}

// Notifications upgrades the request to a WebSocket and keeps it open
// until the client disconnects. The server only pushes; incoming
// messages are read and discarded to drive the close handshake.
func (s *Server) Notifications(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}

	s.Hub.register(caller, conn)
	defer func() {
		s.Hub.unregister(caller, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
