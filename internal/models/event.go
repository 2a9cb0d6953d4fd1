package models

import "time"

// Event is a single entry in the site activity feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // e.g. "user.registered", "post.created"
	Message   string    `json:"message"`
	ActorID   *string   `json:"actorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
