package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
)

// ErrMessageNotFound is returned when no outbox row has the given id.
var ErrMessageNotFound = errors.New("outbox message not found")

const selectColumns = `id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
	payload, metadata, created_at, published_at, next_retry_at, retry_count,
	last_error, dead_lettered_at, dead_letter_reason`

// SQLRepository stores the outbox in the connection's database and joins
// the transaction of the current unit of work, so events are committed
// together with the aggregates that raised them.
type SQLRepository struct {
	conn database.Connection
	now  func() time.Time
}

// NewSQLRepository creates a new outbox repository.
func NewSQLRepository(conn database.Connection) *SQLRepository {
	return &SQLRepository{
		conn: conn,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *SQLRepository) exec(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

func (r *SQLRepository) rebind(query string) string {
	return r.conn.Driver().Rebind(query)
}

// Save stores a new outbox message and sets its ID.
func (r *SQLRepository) Save(ctx context.Context, msg *Message) error {
	query := r.rebind(`
		INSERT INTO outbox (
			event_id, aggregate_type, aggregate_id, event_type, routing_key,
			payload, metadata, created_at, retry_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
		RETURNING id`)

	err := r.exec(ctx).QueryRow(ctx, query,
		msg.EventID,
		msg.AggregateType,
		msg.AggregateID,
		msg.EventType,
		msg.RoutingKey,
		string(msg.Payload),
		string(metadataOrEmpty(msg.Metadata)),
		msg.CreatedAt.UTC(),
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to save outbox message %s: %w", msg.EventID, err)
	}
	return nil
}

// SaveBatch stores multiple outbox messages. Atomicity comes from the
// surrounding unit of work.
func (r *SQLRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// GetUnpublished retrieves messages due for publishing.
func (r *SQLRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	query := r.rebind(`
		SELECT ` + selectColumns + `
		FROM outbox
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY id
		LIMIT ?`)

	return r.query(ctx, query, r.now(), limit)
}

// GetDead retrieves dead-lettered messages.
func (r *SQLRepository) GetDead(ctx context.Context, limit int) ([]*Message, error) {
	query := r.rebind(`
		SELECT ` + selectColumns + `
		FROM outbox
		WHERE dead_lettered_at IS NOT NULL
		ORDER BY id
		LIMIT ?`)

	return r.query(ctx, query, limit)
}

// MarkPublished marks a message as successfully published.
func (r *SQLRepository) MarkPublished(ctx context.Context, id int64) error {
	query := r.rebind(`UPDATE outbox SET published_at = ?, dead_lettered_at = NULL WHERE id = ?`)
	return r.update(ctx, query, r.now(), id)
}

// MarkFailed records a publish failure.
func (r *SQLRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	query := r.rebind(`
		UPDATE outbox
		SET retry_count = retry_count + 1,
			last_error = ?,
			next_retry_at = ?
		WHERE id = ?`)
	return r.update(ctx, query, errMsg, nextRetryAt.UTC(), id)
}

// MarkDead marks a message as dead-lettered.
func (r *SQLRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	query := r.rebind(`
		UPDATE outbox
		SET retry_count = retry_count + 1,
			last_error = ?,
			dead_lettered_at = ?,
			dead_letter_reason = ?
		WHERE id = ?`)
	return r.update(ctx, query, reason, r.now(), reason, id)
}

// Requeue makes a dead-lettered message eligible for publishing again.
func (r *SQLRepository) Requeue(ctx context.Context, id int64) error {
	query := r.rebind(`
		UPDATE outbox
		SET retry_count = 0,
			next_retry_at = NULL,
			dead_lettered_at = NULL,
			dead_letter_reason = NULL
		WHERE id = ? AND published_at IS NULL`)
	return r.update(ctx, query, id)
}

// CountPending counts messages that still have to be published.
func (r *SQLRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM outbox WHERE published_at IS NULL AND dead_lettered_at IS NULL`
	if err := r.exec(ctx).QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending outbox messages: %w", err)
	}
	return n, nil
}

// DeleteOld removes messages published before cutoff.
func (r *SQLRepository) DeleteOld(ctx context.Context, cutoff time.Time) (int64, error) {
	query := r.rebind(`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < ?`)

	result, err := r.exec(ctx).Exec(ctx, query, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete old outbox messages: %w", err)
	}
	return result.RowsAffected()
}

func (r *SQLRepository) update(ctx context.Context, query string, args ...any) error {
	result, err := r.exec(ctx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update outbox message: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update outbox message: %w", err)
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]*Message, error) {
	rows, err := r.exec(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func scanMessage(rows database.Rows) (*Message, error) {
	var (
		msg              Message
		payload          []byte
		metadata         []byte
		publishedAt      sql.NullTime
		nextRetryAt      sql.NullTime
		lastError        sql.NullString
		deadLetteredAt   sql.NullTime
		deadLetterReason sql.NullString
	)

	err := rows.Scan(
		&msg.ID,
		&msg.EventID,
		&msg.AggregateType,
		&msg.AggregateID,
		&msg.EventType,
		&msg.RoutingKey,
		&payload,
		&metadata,
		&msg.CreatedAt,
		&publishedAt,
		&nextRetryAt,
		&msg.RetryCount,
		&lastError,
		&deadLetteredAt,
		&deadLetterReason,
	)
	if err != nil {
		return nil, err
	}

	msg.Payload = payload
	msg.Metadata = metadata
	msg.CreatedAt = msg.CreatedAt.UTC()
	msg.PublishedAt = timePtr(publishedAt)
	msg.NextRetryAt = timePtr(nextRetryAt)
	msg.LastError = stringPtr(lastError)
	msg.DeadLetteredAt = timePtr(deadLetteredAt)
	msg.DeadLetterReason = stringPtr(deadLetterReason)
	return &msg, nil
}

func metadataOrEmpty(m []byte) []byte {
	if len(m) == 0 {
		return []byte("{}")
	}
	return m
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
