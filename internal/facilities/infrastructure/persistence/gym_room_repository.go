package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
)

// GymRoomRepository stores gym rooms in the gym_rooms table.
type GymRoomRepository struct {
	store *persistence.StateStore
}

// NewGymRoomRepository creates a gym room repository over conn.
func NewGymRoomRepository(conn database.Connection) *GymRoomRepository {
	return &GymRoomRepository{store: persistence.NewStateStore(conn, "gym_rooms", "gym_id")}
}

// Save inserts or updates a gym room.
func (r *GymRoomRepository) Save(ctx context.Context, room *domain.GymRoom) error {
	version, err := r.store.Save(ctx, persistence.Record{
		ID:        room.ID(),
		Version:   room.Version(),
		State:     room.Snapshot(),
		Lookups:   []any{room.GymID()},
		CreatedAt: room.CreatedAt(),
		UpdatedAt: room.UpdatedAt(),
	})
	if err != nil {
		return err
	}
	room.SetVersion(version)
	return nil
}

// FindByID finds a gym room by its id.
func (r *GymRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.GymRoom, error) {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.rowToGymRoom(ctx, row)
}

// FindByGymID returns the rooms of a gym, oldest first.
func (r *GymRoomRepository) FindByGymID(ctx context.Context, gymID uuid.UUID) ([]*domain.GymRoom, error) {
	rows, err := r.store.LoadBy(ctx, "gym_id", gymID)
	if err != nil {
		return nil, err
	}

	rooms := make([]*domain.GymRoom, 0, len(rows))
	for _, row := range rows {
		room, err := r.rowToGymRoom(ctx, row)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// Delete removes a gym room regardless of its version.
func (r *GymRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return err
	}
	return r.store.Delete(ctx, id, row.Version)
}

func (r *GymRoomRepository) rowToGymRoom(ctx context.Context, row persistence.Row) (*domain.GymRoom, error) {
	var snap domain.GymRoomSnapshot
	if err := row.Decode(&snap); err != nil {
		return nil, err
	}
	room, err := domain.RehydrateGymRoom(row.Base(), snap)
	if err != nil {
		return nil, err
	}
	r.store.CheckQuota(ctx, row.ID, room)
	return room, nil
}

var _ domain.GymRoomRepository = (*GymRoomRepository)(nil)
