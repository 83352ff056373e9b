// Package events provides a publish/subscribe broker for roster changes.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event being published.
type EventType string

const (
	SignupEvent EventType = "signup"
)

// Event represents a roster change broadcast to subscribers.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	Activity  string    `json:"activity"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// Subscriber provides a subscription channel for events.
type Subscriber interface {
	Subscribe(ctx context.Context) <-chan Event
}

// Publisher allows publishing roster change events.
type Publisher interface {
	Publish(eventType EventType, activity, email string)
}
