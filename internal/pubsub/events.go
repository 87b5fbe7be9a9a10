// Package pubsub provides a generic publish/subscribe event system.
// The theme manager publishes lifecycle events on it and the logger fans
// formatted lines out through it.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// LogEvent carries a formatted log line.
	LogEvent EventType = "log"

	// Theme lifecycle events.
	AppliedEvent  EventType = "applied"
	FallbackEvent EventType = "fallback"
	SavedEvent    EventType = "saved"
	ResetEvent    EventType = "reset"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}
