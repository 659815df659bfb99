package domain

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is the consistency boundary every repository loads and saves.
type AggregateRoot interface {
	ID() uuid.UUID
	CreatedAt() time.Time
	UpdatedAt() time.Time
	DomainEvents() []DomainEvent
	ClearDomainEvents()
	Version() int
}

// BaseEntity carries an immutable id and the creation and modification
// timestamps. Reservations embed it directly; aggregates through
// BaseAggregateRoot.
type BaseEntity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewBaseEntity creates an entity with id, or a generated one when id is
// uuid.Nil.
func NewBaseEntity(id uuid.UUID) BaseEntity {
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC()
	return BaseEntity{id: id, createdAt: now, updatedAt: now}
}

// RehydrateBaseEntity recreates an entity from persisted state.
func RehydrateBaseEntity(id uuid.UUID, createdAt, updatedAt time.Time) BaseEntity {
	return BaseEntity{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

func (e BaseEntity) ID() uuid.UUID        { return e.id }
func (e BaseEntity) CreatedAt() time.Time { return e.createdAt }
func (e BaseEntity) UpdatedAt() time.Time { return e.updatedAt }

// Touch marks the entity as modified now.
func (e *BaseEntity) Touch() {
	e.updatedAt = time.Now().UTC()
}

// BaseAggregateRoot collects uncommitted domain events and tracks the
// persisted version used for optimistic concurrency.
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents []DomainEvent
	version      int
}

// NewBaseAggregateRoot creates an unsaved aggregate root at version 0.
func NewBaseAggregateRoot(id uuid.UUID) BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(id)}
}

// RehydrateBaseAggregateRoot recreates an aggregate root from persisted state.
func RehydrateBaseAggregateRoot(id uuid.UUID, version int, createdAt, updatedAt time.Time) BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: RehydrateBaseEntity(id, createdAt, updatedAt),
		version:    version,
	}
}

func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops uncommitted events once they reached the outbox.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// AddDomainEvent records an event and marks the aggregate as modified.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
	a.Touch()
}

// Version returns the version the aggregate was loaded with.
func (a *BaseAggregateRoot) Version() int {
	return a.version
}

// SetVersion is called by repositories after a successful save.
func (a *BaseAggregateRoot) SetVersion(version int) {
	a.version = version
}
