package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	EventCreated   = "created"
	EventEnded     = "ended"
	EventDestroyed = "destroyed"

	// StatsSubject receives the live session count on every tick.
	StatsSubject = "adventure.registry.stats"
)

// EventPublisher delivers lifecycle events to interested listeners.
type EventPublisher interface {
	PublishJSON(subject string, v any) error
}

// Event describes a change in a session's lifecycle.
type Event struct {
	Session string    `json:"session"`
	Type    string    `json:"type"`
	Player  string    `json:"player,omitempty"`
	Score   int       `json:"score,omitempty"`
	Won     bool      `json:"won,omitempty"`
	At      time.Time `json:"at"`
}

// Stats is published on StatsSubject.
type Stats struct {
	Sessions int       `json:"sessions"`
	At       time.Time `json:"at"`
}

// Subject returns the subject events for session id are published on.
func Subject(id string, eventType string) string {
	return fmt.Sprintf("adventure.session.%s.%s", id, eventType)
}

func (r *Registry) publish(ctx context.Context, e Event) {
	if r.events == nil {
		return
	}
	e.At = time.Now().UTC()
	if err := r.events.PublishJSON(Subject(e.Session, e.Type), e); err != nil {
		slog.WarnContext(ctx, "publishing session event", "session", e.Session, "type", e.Type, "error", err)
	}
}
