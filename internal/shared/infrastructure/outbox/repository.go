package outbox

import (
	"context"
	"time"
)

// Repository defines the interface for outbox persistence.
type Repository interface {
	// Save stores a new outbox message.
	Save(ctx context.Context, msg *Message) error

	// SaveBatch stores multiple outbox messages atomically.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns messages that are neither published nor
	// dead-lettered and whose retry time has come, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)

	// MarkPublished marks a message as successfully published.
	MarkPublished(ctx context.Context, id int64) error

	// MarkFailed records a publish failure and when to try again.
	MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error

	// MarkDead marks a message as dead-lettered.
	MarkDead(ctx context.Context, id int64, reason string) error

	// GetDead returns dead-lettered messages, oldest first.
	GetDead(ctx context.Context, limit int) ([]*Message, error)

	// Requeue clears the dead letter and retry state of a message.
	Requeue(ctx context.Context, id int64) error

	// CountPending returns the number of messages still to be published.
	CountPending(ctx context.Context) (int64, error)

	// DeleteOld removes published messages published before cutoff.
	DeleteOld(ctx context.Context, cutoff time.Time) (int64, error)
}
