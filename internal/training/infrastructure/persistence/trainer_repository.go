package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// TrainerRepository stores trainers in the trainers table.
type TrainerRepository struct {
	store *persistence.StateStore
}

// NewTrainerRepository creates a trainer repository over conn.
func NewTrainerRepository(conn database.Connection) *TrainerRepository {
	return &TrainerRepository{store: persistence.NewStateStore(conn, "trainers")}
}

// Save inserts or updates a trainer.
func (r *TrainerRepository) Save(ctx context.Context, trainer *domain.Trainer) error {
	version, err := r.store.Save(ctx, persistence.Record{
		ID:        trainer.ID(),
		Version:   trainer.Version(),
		State:     trainer.Snapshot(),
		CreatedAt: trainer.CreatedAt(),
		UpdatedAt: trainer.UpdatedAt(),
	})
	if err != nil {
		return err
	}
	trainer.SetVersion(version)
	return nil
}

// FindByID finds a trainer by its id.
func (r *TrainerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Trainer, error) {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var snap domain.TrainerSnapshot
	if err := row.Decode(&snap); err != nil {
		return nil, err
	}
	return domain.RehydrateTrainer(row.Base(), snap)
}

var _ domain.TrainerRepository = (*TrainerRepository)(nil)
