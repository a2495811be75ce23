// Package live pushes board-changed notifications to admin clients watching
// a session. Messages carry no board data: clients re-fetch the board on
// notification, keeping the remote store the single source of truth.
package live

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event types broadcast to session rooms.
const (
	EventBoardUpdated    = "BOARD_UPDATED"
	EventPairingsCreated = "PAIRINGS_CREATED"
	EventSessionClosed   = "SESSION_CLOSED"
)

type Message struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id"`
}

// Hub tracks one room of clients per session and fans broadcast messages out
// to them. Register, Unregister and Broadcast requests are serialized by Run.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage

	mu     sync.RWMutex
	rooms  map[string]map[*Client]bool
	logger *slog.Logger
}

type roomMessage struct {
	room    string
	payload []byte
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 16),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// SessionRoom names the room for a session's board watchers.
func SessionRoom(sessionID uuid.UUID) string {
	return "session_" + sessionID.String()
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.mu.Unlock()
			h.logger.Debug("live client registered", slog.String("room", client.room))

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("live client unregistered", slog.String("room", client.room))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.rooms[msg.room] {
				client.trySend(msg.payload)
			}
			h.mu.RUnlock()
		}
	}
}

// Notify broadcasts an event to every client in a session's room. Send
// failures drop the message for that client; the watcher re-syncs on its
// next fetch anyway.
func (h *Hub) Notify(sessionID uuid.UUID, eventType string) {
	room := SessionRoom(sessionID)
	payload, err := json.Marshal(Message{Type: eventType, RoomID: room})
	if err != nil {
		h.logger.Error("failed to marshal live message", slog.Any("error", err))
		return
	}
	h.broadcast <- roomMessage{room: room, payload: payload}
}
