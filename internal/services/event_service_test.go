package services

import "testing"

type captureFeed struct {
	messages [][]byte
}

func (f *captureFeed) Publish(message []byte) {
	f.messages = append(f.messages, message)
}

func TestRecordEvent(t *testing.T) {
	db := setupTestDB(t)
	feed := &captureFeed{}
	svc := NewEventService(db, feed)

	actor := "u-1"
	svc.RecordEvent("user.login", "Ada logged in", &actor)
	svc.RecordEvent("post.created", "Ada published a post", &actor)

	events, err := svc.GetRecentEvents(10)
	if err != nil {
		t.Fatalf("GetRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	// Most recent first.
	if events[0].Type != "post.created" || events[1].Type != "user.login" {
		t.Errorf("event order = %s, %s", events[0].Type, events[1].Type)
	}
	if events[0].ActorID == nil || *events[0].ActorID != actor {
		t.Errorf("ActorID = %v, want %s", events[0].ActorID, actor)
	}

	if len(feed.messages) != 2 {
		t.Errorf("published %d feed messages, want 2", len(feed.messages))
	}
}

func TestRecordEventNilFeed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db, nil)

	// Must not panic without a publisher.
	svc.RecordEvent("user.registered", "someone joined", nil)

	events, err := svc.GetRecentEvents(10)
	if err != nil {
		t.Fatalf("GetRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("len(events) = %d, want 1", len(events))
	}
}
