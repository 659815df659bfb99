package domain_test

import (
	"testing"
	"time"

	"github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAggregateEvent struct {
	domain.BaseEvent
}

func newTestAggregateEvent(aggregateID uuid.UUID) *testAggregateEvent {
	return &testAggregateEvent{
		BaseEvent: domain.NewBaseEvent(aggregateID, "TestAggregate", "test.aggregate.created"),
	}
}

func TestNewBaseEntity(t *testing.T) {
	before := time.Now().UTC()
	generated := domain.NewBaseEntity(uuid.Nil)

	assert.NotEqual(t, uuid.Nil, generated.ID())
	assert.False(t, generated.CreatedAt().Before(before))
	assert.Equal(t, generated.CreatedAt(), generated.UpdatedAt())

	id := uuid.New()
	assert.Equal(t, id, domain.NewBaseEntity(id).ID())
}

func TestBaseEntity_Touch(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entity := domain.RehydrateBaseEntity(uuid.New(), created, created)

	entity.Touch()

	assert.Equal(t, created, entity.CreatedAt())
	assert.True(t, entity.UpdatedAt().After(created))
}

func TestNewBaseAggregateRoot(t *testing.T) {
	agg := domain.NewBaseAggregateRoot(uuid.Nil)

	assert.NotEqual(t, uuid.Nil, agg.ID())
	assert.Equal(t, 0, agg.Version())
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	agg := domain.NewBaseAggregateRoot(uuid.Nil)
	event := newTestAggregateEvent(agg.ID())

	agg.AddDomainEvent(event)

	events := agg.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, event.EventID(), events[0].EventID())
	assert.Equal(t, "test.aggregate.created", events[0].RoutingKey())

	agg.ClearDomainEvents()
	assert.Empty(t, agg.DomainEvents())
}

func TestRehydrateBaseAggregateRoot(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	agg := domain.RehydrateBaseAggregateRoot(id, 7, created, updated)

	assert.Equal(t, id, agg.ID())
	assert.Equal(t, 7, agg.Version())
	assert.Equal(t, created, agg.CreatedAt())
	assert.Equal(t, updated, agg.UpdatedAt())

	agg.SetVersion(8)
	assert.Equal(t, 8, agg.Version())
}

func TestBaseEvent_SetMetadata(t *testing.T) {
	event := newTestAggregateEvent(uuid.New())
	meta := domain.EventMetadata{CorrelationID: uuid.New(), ActorID: uuid.New()}

	event.SetMetadata(meta)

	assert.Equal(t, meta, event.Metadata())
}
