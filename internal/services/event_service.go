package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/quillpad/quillpad-be/internal/models"
	"github.com/rs/zerolog/log"
)

// FeedPublisher receives each recorded event, already JSON-encoded, for live
// delivery. The websocket hub implements it.
type FeedPublisher interface {
	Publish(message []byte)
}

// EventServiceProvider defines the interface for activity-feed services.
type EventServiceProvider interface {
	RecordEvent(eventType, message string, actorID *string)
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService records audit events and pushes them to the live feed.
type EventService struct {
	db   *sql.DB
	feed FeedPublisher // may be nil
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, feed FeedPublisher) *EventService {
	return &EventService{db: db, feed: feed}
}

// RecordEvent logs a new event to the database and broadcasts it. Failures
// are logged and swallowed: the activity feed never fails a request.
func (s *EventService) RecordEvent(eventType, message string, actorID *string) {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Message: message,
		ActorID: actorID,
	}

	_, err := s.db.Exec("INSERT INTO events(id, type, message, actor_id) VALUES(?, ?, ?, ?)",
		event.ID, event.Type, event.Message, event.ActorID)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
		return
	}

	if s.feed != nil {
		if payload, err := json.Marshal(event); err == nil {
			s.feed.Publish(payload)
		}
	}
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, message, actor_id, created_at FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Message, &event.ActorID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
