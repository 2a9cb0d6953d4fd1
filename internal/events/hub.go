package events

import "github.com/rs/zerolog/log"

// Hub maintains the set of connected feed clients and broadcasts activity
// events to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound events for global broadcast.
	broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Publish queues an event for delivery to every connected client. It never
// blocks the caller; if the hub is saturated the event is dropped from the
// live feed (it is still persisted by the event service).
func (h *Hub) Publish(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		log.Warn().Msg("Feed hub saturated, dropping live event")
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}
