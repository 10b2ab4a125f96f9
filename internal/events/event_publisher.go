package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Item domain events. Published after a successful write; publish failures
// are logged by the caller and never surfaced to the client.
type ItemCreatedEvent struct {
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   int       `json:"quantity"`
	Location   string    `json:"location"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ItemUpdatedEvent struct {
	ItemID     string    `json:"item_id"`
	Quantity   int       `json:"quantity"`
	Location   *string   `json:"location,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InMemoryEventPublisher records events locally. Used as a fallback when
// Kafka is unavailable and in tests.
type InMemoryEventPublisher struct {
	mu     sync.Mutex
	logger *zap.Logger
	events []interface{}
}

func NewEventPublisher() *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: zap.NewNop(),
		events: make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.logger.Info("Event published (in-memory)", zap.Any("event", event))
	return nil
}

// Events returns the events published so far.
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}
