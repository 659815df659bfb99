package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/shared/domain"
)

// EventConsumer handles specific event types.
type EventConsumer interface {
	// EventTypes returns the routing keys this consumer handles. Patterns
	// follow topic exchange rules, e.g. "training.session.*" or "facilities.#".
	EventTypes() []string

	// Handle processes the event.
	Handle(ctx context.Context, event *ConsumedEvent) error
}

// ConsumedEvent is the envelope every domain event travels in, on the
// broker and on the in-process bus alike.
type ConsumedEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	RoutingKey    string          `json:"routing_key"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
	Metadata      EventMetadata   `json:"metadata"`
}

// EventMetadata contains tracing information about the event.
type EventMetadata struct {
	ActorID       uuid.UUID `json:"actor_id"`
	CorrelationID uuid.UUID `json:"correlation_id"`
	CausationID   uuid.UUID `json:"causation_id"`
}

// EncodeDomainEvent wraps a domain event in its envelope. The event's own
// exported fields become the payload.
func EncodeDomainEvent(event domain.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", event.RoutingKey(), err)
	}

	meta := event.Metadata()
	return json.Marshal(ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt().UTC(),
		Payload:       payload,
		Metadata: EventMetadata{
			ActorID:       meta.ActorID,
			CorrelationID: meta.CorrelationID,
			CausationID:   meta.CausationID,
		},
	})
}

// DecodePayload unmarshals the event payload into v.
func (e *ConsumedEvent) DecodePayload(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.RoutingKey, err)
	}
	return nil
}

// Publisher delivers encoded envelopes produced by EncodeDomainEvent.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// Consumer feeds events from a broker into registered EventConsumers. Start
// blocks until ctx is done or Close is called.
type Consumer interface {
	Start(ctx context.Context) error
	RegisterConsumer(consumer EventConsumer)
	Close() error
}

var (
	_ Publisher = (*RabbitMQPublisher)(nil)
	_ Publisher = (*BreakerPublisher)(nil)
	_ Publisher = (*InProcessEventBus)(nil)
	_ Consumer  = (*RabbitMQConsumer)(nil)
)
