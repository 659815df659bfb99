package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
)

// Record is one aggregate as written to a state table.
type Record struct {
	ID uuid.UUID
	// Version is the version the aggregate was loaded with; 0 for a new one.
	Version   int
	State     any
	Lookups   []any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Row is one aggregate as read from a state table.
type Row struct {
	ID        uuid.UUID
	Version   int
	State     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Base rebuilds the aggregate root fields of the row.
func (r Row) Base() sharedDomain.BaseAggregateRoot {
	return sharedDomain.RehydrateBaseAggregateRoot(r.ID, r.Version, r.CreatedAt, r.UpdatedAt)
}

// Decode unmarshals the JSON state into snapshot.
func (r Row) Decode(snapshot any) error {
	if err := json.Unmarshal(r.State, snapshot); err != nil {
		return fmt.Errorf("failed to decode state of %s: %w", r.ID, err)
	}
	return nil
}

// StateStore keeps aggregates as versioned JSON documents in one table with
// the columns id, version, state, created_at and updated_at, followed by
// any lookup columns used to find aggregates by a foreign id.
type StateStore struct {
	conn    database.Connection
	table   string
	lookups []string
	logger  *slog.Logger
}

// NewStateStore creates a store over table. Lookup column values are passed
// to Save in the same order.
func NewStateStore(conn database.Connection, table string, lookups ...string) *StateStore {
	return &StateStore{conn: conn, table: table, lookups: lookups}
}

// WithLogger sets the logger used for load warnings. Without one the
// default slog logger is used.
func (s *StateStore) WithLogger(logger *slog.Logger) *StateStore {
	s.logger = logger
	return s
}

// CheckQuota logs a warning when agg, just restored from row id, holds more
// members than its quota allows. The aggregate stays usable: it refuses new
// members until enough are removed.
func (s *StateStore) CheckQuota(ctx context.Context, id uuid.UUID, agg sharedDomain.QuotaReporter) {
	over := agg.OverQuota()
	if len(over) == 0 {
		return
	}
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "aggregate exceeds its quota",
		"table", s.table,
		"id", id,
		"collections", over,
	)
}

// Save inserts a new aggregate or updates an existing one when its stored
// version still equals rec.Version. It returns the new version.
func (s *StateStore) Save(ctx context.Context, rec Record) (int, error) {
	if len(rec.Lookups) != len(s.lookups) {
		return 0, fmt.Errorf("%s: expected %d lookup values, got %d", s.table, len(s.lookups), len(rec.Lookups))
	}

	state, err := json.Marshal(rec.State)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s state: %w", s.table, err)
	}

	if rec.Version == 0 {
		return 1, s.insert(ctx, rec, string(state))
	}
	return rec.Version + 1, s.update(ctx, rec, string(state))
}

func (s *StateStore) insert(ctx context.Context, rec Record, state string) error {
	columns := append([]string{"id", "version", "state", "created_at", "updated_at"}, s.lookups...)
	args := append([]any{rec.ID, 1, state, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()}, rec.Lookups...)

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		s.table, strings.Join(columns, ", "), placeholders(len(columns)))

	if _, err := s.executor(ctx).Exec(ctx, s.rebind(query), args...); err != nil {
		if database.IsUniqueViolation(err) {
			return sharedDomain.ErrConcurrentModification
		}
		return fmt.Errorf("failed to insert into %s: %w", s.table, err)
	}
	return nil
}

func (s *StateStore) update(ctx context.Context, rec Record, state string) error {
	set := []string{"version = version + 1", "state = ?", "updated_at = ?"}
	args := []any{state, rec.UpdatedAt.UTC()}
	for i, column := range s.lookups {
		set = append(set, column+" = ?")
		args = append(args, rec.Lookups[i])
	}
	args = append(args, rec.ID, rec.Version)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? AND version = ?`, s.table, strings.Join(set, ", "))

	result, err := s.executor(ctx).Exec(ctx, s.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", s.table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", s.table, err)
	}
	if affected == 0 {
		return sharedDomain.ErrConcurrentModification
	}
	return nil
}

// Load returns the row with the given id or sharedDomain.ErrAggregateNotFound.
func (s *StateStore) Load(ctx context.Context, id uuid.UUID) (Row, error) {
	query := fmt.Sprintf(`SELECT id, version, state, created_at, updated_at FROM %s WHERE id = ?`, s.table)

	row, err := scanRow(s.executor(ctx).QueryRow(ctx, s.rebind(query), id))
	if err != nil {
		if database.IsNoRows(err) {
			return Row{}, sharedDomain.ErrAggregateNotFound
		}
		return Row{}, fmt.Errorf("failed to load from %s: %w", s.table, err)
	}
	return row, nil
}

// LoadBy returns every row whose lookup column equals value, oldest first.
func (s *StateStore) LoadBy(ctx context.Context, column string, value any) ([]Row, error) {
	if !s.hasLookup(column) {
		return nil, fmt.Errorf("%s: unknown lookup column %q", s.table, column)
	}

	query := fmt.Sprintf(`SELECT id, version, state, created_at, updated_at FROM %s WHERE %s = ? ORDER BY created_at, id`,
		s.table, column)

	rows, err := s.executor(ctx).Query(ctx, s.rebind(query), value)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.table, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete removes the row when its stored version still equals version.
func (s *StateStore) Delete(ctx context.Context, id uuid.UUID, version int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND version = ?`, s.table)

	result, err := s.executor(ctx).Exec(ctx, s.rebind(query), id, version)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", s.table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", s.table, err)
	}
	if affected == 0 {
		if _, err := s.Load(ctx, id); errors.Is(err, sharedDomain.ErrAggregateNotFound) {
			return err
		}
		return sharedDomain.ErrConcurrentModification
	}
	return nil
}

func (s *StateStore) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, s.conn)
}

func (s *StateStore) rebind(query string) string {
	return s.conn.Driver().Rebind(query)
}

func (s *StateStore) hasLookup(column string) bool {
	for _, c := range s.lookups {
		if c == column {
			return true
		}
	}
	return false
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (Row, error) {
	var row Row
	if err := sc.Scan(&row.ID, &row.Version, &row.State, &row.CreatedAt, &row.UpdatedAt); err != nil {
		return Row{}, err
	}
	row.CreatedAt = row.CreatedAt.UTC()
	row.UpdatedAt = row.UpdatedAt.UTC()
	return row, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
