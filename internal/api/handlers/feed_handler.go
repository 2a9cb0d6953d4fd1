package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/quillpad/quillpad-be/internal/events"
	"github.com/rs/zerolog/log"
)

// FeedHandler upgrades admin dashboard connections to the live activity feed.
type FeedHandler struct {
	hub *events.Hub
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(hub *events.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced by the router; the browser sends the
		// token cookie on the upgrade request.
		return true
	},
}

// Serve handles the WebSocket connection request. Authentication and role
// gating have already run in the middleware chain.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade feed connection")
		return
	}

	client := events.NewClient(h.hub, conn)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
