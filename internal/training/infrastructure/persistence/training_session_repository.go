package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// TrainingSessionRepository stores sessions in the training_sessions table.
type TrainingSessionRepository struct {
	store *persistence.StateStore
}

// NewTrainingSessionRepository creates a session repository over conn.
func NewTrainingSessionRepository(conn database.Connection) *TrainingSessionRepository {
	return &TrainingSessionRepository{
		store: persistence.NewStateStore(conn, "training_sessions", "gym_room_id", "trainer_id", "start_date"),
	}
}

// Save inserts or updates a session.
func (r *TrainingSessionRepository) Save(ctx context.Context, session *domain.TrainingSession) error {
	version, err := r.store.Save(ctx, persistence.Record{
		ID:        session.ID(),
		Version:   session.Version(),
		State:     session.Snapshot(),
		Lookups:   []any{session.GymRoomID(), session.TrainerID(), session.StartDate().String()},
		CreatedAt: session.CreatedAt(),
		UpdatedAt: session.UpdatedAt(),
	})
	if err != nil {
		return err
	}
	session.SetVersion(version)
	return nil
}

// FindByID finds a session by its id.
func (r *TrainingSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TrainingSession, error) {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return rowToTrainingSession(row)
}

// FindByGymRoomID returns the sessions held in a room, canceled ones
// included, in scheduling order.
func (r *TrainingSessionRepository) FindByGymRoomID(ctx context.Context, gymRoomID uuid.UUID) ([]*domain.TrainingSession, error) {
	rows, err := r.store.LoadBy(ctx, "gym_room_id", gymRoomID)
	if err != nil {
		return nil, err
	}

	sessions := make([]*domain.TrainingSession, 0, len(rows))
	for _, row := range rows {
		session, err := rowToTrainingSession(row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func rowToTrainingSession(row persistence.Row) (*domain.TrainingSession, error) {
	var snap domain.TrainingSessionSnapshot
	if err := row.Decode(&snap); err != nil {
		return nil, err
	}
	return domain.RehydrateTrainingSession(row.Base(), snap), nil
}

var _ domain.TrainingSessionRepository = (*TrainingSessionRepository)(nil)
