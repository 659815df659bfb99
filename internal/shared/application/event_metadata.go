package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/pkg/observability"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata creates command-scoped metadata for domain events. All
// events raised by one command share the correlation id, which is taken from
// the request context when it carries one. A nil actorID falls back to the
// actor in ctx.
func NewEventMetadata(ctx context.Context, actorID uuid.UUID) domain.EventMetadata {
	correlationID, err := uuid.Parse(observability.CorrelationIDFromContext(ctx))
	if err != nil {
		correlationID = uuid.New()
	}
	if actorID == uuid.Nil {
		actorID = observability.ActorIDFromContext(ctx)
	}
	return domain.EventMetadata{
		CorrelationID: correlationID,
		CausationID:   uuid.New(),
		ActorID:       actorID,
	}
}

// ApplyEventMetadata sets metadata on all events that support it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}

// CollectEvents drains the uncommitted events of every aggregate in order.
func CollectEvents(aggregates ...domain.AggregateRoot) []domain.DomainEvent {
	var events []domain.DomainEvent
	for _, aggregate := range aggregates {
		events = append(events, aggregate.DomainEvents()...)
		aggregate.ClearDomainEvents()
	}
	return events
}
