package handlers

import (
	"log/slog"
	"net/http"

	"github.com/clubedopeao/tournament-api/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering happens at the CORS layer.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeBoard upgrades the connection and subscribes it to a session's
// board room. Clients receive notification events and re-fetch the
// board over HTTP.
func (h *WebSocketHandler) ServeBoard(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getUUIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, live.SessionRoom(sessionID))
	client.Start()
}
