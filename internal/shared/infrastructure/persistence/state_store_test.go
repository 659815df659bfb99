package persistence_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database/sqlite"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
)

type roomState struct {
	Name  string `json:"name"`
	Spots int    `json:"spots"`
}

func newTestStore(t *testing.T) (*persistence.StateStore, database.Connection) {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "gym.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(ctx, `CREATE TABLE rooms (
		id TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		state TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		gym_id TEXT NOT NULL
	)`)
	require.NoError(t, err)

	return persistence.NewStateStore(conn, "rooms", "gym_id"), conn
}

func newRecord(gymID uuid.UUID, name string) persistence.Record {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return persistence.Record{
		ID:        uuid.New(),
		State:     roomState{Name: name, Spots: 10},
		Lookups:   []any{gymID},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStateStore_InsertAndLoad(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	rec := newRecord(uuid.New(), "Spinning")

	version, err := store.Save(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	row, err := store.Load(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, row.ID)
	assert.Equal(t, 1, row.Version)
	assert.True(t, rec.CreatedAt.Equal(row.CreatedAt))

	var state roomState
	require.NoError(t, row.Decode(&state))
	assert.Equal(t, roomState{Name: "Spinning", Spots: 10}, state)

	base := row.Base()
	assert.Equal(t, rec.ID, base.ID())
	assert.Equal(t, 1, base.Version())
}

func TestStateStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), uuid.New())

	assert.ErrorIs(t, err, sharedDomain.ErrAggregateNotFound)
}

func TestStateStore_UpdateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	rec := newRecord(uuid.New(), "Spinning")
	_, err := store.Save(ctx, rec)
	require.NoError(t, err)

	rec.Version = 1
	rec.State = roomState{Name: "Yoga", Spots: 8}
	version, err := store.Save(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	row, err := store.Load(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, row.Version)
	var state roomState
	require.NoError(t, row.Decode(&state))
	assert.Equal(t, "Yoga", state.Name)
}

func TestStateStore_StaleVersionIsRejected(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	rec := newRecord(uuid.New(), "Spinning")
	_, err := store.Save(ctx, rec)
	require.NoError(t, err)

	rec.Version = 1
	_, err = store.Save(ctx, rec)
	require.NoError(t, err)

	// A second writer that also loaded version 1.
	_, err = store.Save(ctx, rec)
	assert.ErrorIs(t, err, sharedDomain.ErrConcurrentModification)
}

func TestStateStore_DuplicateInsertIsConcurrentModification(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	rec := newRecord(uuid.New(), "Spinning")
	_, err := store.Save(ctx, rec)
	require.NoError(t, err)

	_, err = store.Save(ctx, rec)

	assert.ErrorIs(t, err, sharedDomain.ErrConcurrentModification)
}

func TestStateStore_LoadBy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	gymID := uuid.New()

	first := newRecord(gymID, "Spinning")
	second := newRecord(gymID, "Yoga")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	other := newRecord(uuid.New(), "Boxing")
	for _, rec := range []persistence.Record{second, first, other} {
		_, err := store.Save(ctx, rec)
		require.NoError(t, err)
	}

	rows, err := store.LoadBy(ctx, "gym_id", gymID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)

	_, err = store.LoadBy(ctx, "name", "Yoga")
	assert.Error(t, err)
}

func TestStateStore_LookupCountMismatch(t *testing.T) {
	store, _ := newTestStore(t)
	rec := newRecord(uuid.New(), "Spinning")
	rec.Lookups = nil

	_, err := store.Save(context.Background(), rec)

	assert.Error(t, err)
}

type quotaState []string

func (q quotaState) OverQuota() []string { return q }

func TestStateStore_CheckQuota(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	store, _ := newTestStore(t)
	store.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	id := uuid.New()

	store.CheckQuota(ctx, id, quotaState(nil))
	assert.Zero(t, buf.Len())

	store.CheckQuota(ctx, id, quotaState{"gym_rooms"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "rooms", entry["table"])
	assert.Equal(t, id.String(), entry["id"])
	assert.Equal(t, []any{"gym_rooms"}, entry["collections"])
}

func TestStateStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	rec := newRecord(uuid.New(), "Spinning")
	_, err := store.Save(ctx, rec)
	require.NoError(t, err)

	assert.ErrorIs(t, store.Delete(ctx, rec.ID, 7), sharedDomain.ErrConcurrentModification)
	require.NoError(t, store.Delete(ctx, rec.ID, 1))
	assert.ErrorIs(t, store.Delete(ctx, rec.ID, 1), sharedDomain.ErrAggregateNotFound)

	_, err = store.Load(ctx, rec.ID)
	assert.ErrorIs(t, err, sharedDomain.ErrAggregateNotFound)
}

func TestStateStore_JoinsUnitOfWork(t *testing.T) {
	ctx := context.Background()
	store, conn := newTestStore(t)
	uow := database.NewUnitOfWork(conn)
	rec := newRecord(uuid.New(), "Spinning")

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = store.Save(txCtx, rec)
	require.NoError(t, err)
	_, err = store.Load(txCtx, rec.ID)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	_, err = store.Load(ctx, rec.ID)
	assert.ErrorIs(t, err, sharedDomain.ErrAggregateNotFound)
}
