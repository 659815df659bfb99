package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
)

// SaveEvents drains the events of aggregates, stamps them with one set of
// metadata for actorID and stores them in the outbox. Call it with the
// transaction context so the events commit together with the aggregates.
func SaveEvents(ctx context.Context, outboxRepo outbox.Repository, actorID uuid.UUID, aggregates ...domain.AggregateRoot) error {
	events := CollectEvents(aggregates...)
	if len(events) == 0 {
		return nil
	}
	ApplyEventMetadata(events, NewEventMetadata(ctx, actorID))

	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	return outboxRepo.SaveBatch(ctx, msgs)
}
