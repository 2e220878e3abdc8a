package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/chatwave/backend/internal/models"
)

// Hub maintains active websocket connections: one shared public room plus a
// room per user id for private-message events. The push channel is purely a
// wake-up signal; clients reconcile through the id-cursor polling endpoints,
// so a dropped broadcast loses nothing.
type Hub struct {
	publicRoom map[*websocket.Conn]bool
	userRooms  map[uint]map[*websocket.Conn]bool
	mu         sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		publicRoom: make(map[*websocket.Conn]bool),
		userRooms:  make(map[uint]map[*websocket.Conn]bool),
	}
}

// AddClient registers a connection for a user. Every client joins the public
// room and its own private room.
func (h *Hub) AddClient(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.publicRoom[conn] = true
	if _, ok := h.userRooms[userID]; !ok {
		h.userRooms[userID] = make(map[*websocket.Conn]bool)
	}
	h.userRooms[userID][conn] = true
}

// RemoveClient removes a connection.
func (h *Hub) RemoveClient(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.publicRoom, conn)
	if conns, ok := h.userRooms[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.userRooms, userID)
		}
	}
}

// BroadcastPublicMessage sends a new public message event to every client.
func (h *Hub) BroadcastPublicMessage(msg models.MessageView) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.publicRoom))
	for conn := range h.publicRoom {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	event := models.ChatEvent{Type: "message", Message: &msg}
	payload, _ := json.Marshal(event)
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.dropConn(conn)
		}
	}
}

// NotifyUser sends an event to every connection a user has open. Used for
// private-message and notification wake-ups.
func (h *Hub) NotifyUser(userID uint, event interface{}) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.userRooms[userID]))
	for conn := range h.userRooms[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	payload, _ := json.Marshal(event)
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.dropConn(conn)
		}
	}
}

func (h *Hub) dropConn(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.publicRoom, conn)
	for userID, conns := range h.userRooms {
		if conns[conn] {
			delete(conns, conn)
			if len(conns) == 0 {
				delete(h.userRooms, userID)
			}
		}
	}
}
