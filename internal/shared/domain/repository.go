package domain

import (
	"context"

	"github.com/google/uuid"
)

var (
	// ErrAggregateNotFound is returned by repositories when no row matches the id.
	ErrAggregateNotFound = NewError(KindNotFound, "aggregate.not_found", "aggregate not found")

	// ErrConcurrentModification is returned when a save races another writer.
	ErrConcurrentModification = NewError(KindConflict, "aggregate.concurrent_modification", "aggregate was modified concurrently")
)

// Repository defines the persistence contract shared by all aggregates.
type Repository[T AggregateRoot] interface {
	Save(ctx context.Context, aggregate T) error
	FindByID(ctx context.Context, id uuid.UUID) (T, error)
}
