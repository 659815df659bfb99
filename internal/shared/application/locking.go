package application

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Locker serializes mutations of one aggregate across processes. The
// returned function releases the lock.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(ctx context.Context) error, error)
}

// LockKey names the lock guarding one aggregate.
func LockKey(aggregateType string, id uuid.UUID) string {
	return aggregateType + ":" + id.String()
}

// WithLocks acquires the locks for keys in sorted order, runs fn and
// releases them in reverse order. Sorting keeps two commands that touch the
// same aggregates from deadlocking each other.
func WithLocks(ctx context.Context, locker Locker, keys []string, fn func(ctx context.Context) error) (err error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	releases := make([]func(context.Context) error, 0, len(sorted))
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			// Release even when the caller's context is done.
			if relErr := releases[i](context.WithoutCancel(ctx)); relErr != nil && err == nil {
				err = fmt.Errorf("failed to release lock: %w", relErr)
			}
		}
	}()

	for _, key := range sorted {
		release, err := locker.Acquire(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to lock %s: %w", key, err)
		}
		releases = append(releases, release)
	}

	return fn(ctx)
}
