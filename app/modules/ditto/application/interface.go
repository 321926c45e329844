package dittoservice

import (
	"context"

	dittodomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ditto/domain"
)

// Message is a guild message as seen by the tracker.
type Message struct {
	ChannelID string
	UserID    string
	Name      string
	Content   string
}

// Service switches letter tracking and feeds it messages.
type Service interface {
	// Activate reports whether tracking was already on, in which case only
	// the letters were reset.
	Activate(ctx context.Context) (bool, error)
	Deactivate(ctx context.Context) error
	Observe(ctx context.Context, msg Message) (dittodomain.Observation, bool)
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, payload any) error
}
