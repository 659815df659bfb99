package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// ParticipantRepository stores participants in the participants table.
type ParticipantRepository struct {
	store *persistence.StateStore
}

// NewParticipantRepository creates a participant repository over conn.
func NewParticipantRepository(conn database.Connection) *ParticipantRepository {
	return &ParticipantRepository{store: persistence.NewStateStore(conn, "participants")}
}

// Save inserts or updates a participant.
func (r *ParticipantRepository) Save(ctx context.Context, participant *domain.Participant) error {
	version, err := r.store.Save(ctx, persistence.Record{
		ID:        participant.ID(),
		Version:   participant.Version(),
		State:     participant.Snapshot(),
		CreatedAt: participant.CreatedAt(),
		UpdatedAt: participant.UpdatedAt(),
	})
	if err != nil {
		return err
	}
	participant.SetVersion(version)
	return nil
}

// FindByID finds a participant by its id.
func (r *ParticipantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var snap domain.ParticipantSnapshot
	if err := row.Decode(&snap); err != nil {
		return nil, err
	}
	return domain.RehydrateParticipant(row.Base(), snap)
}

var _ domain.ParticipantRepository = (*ParticipantRepository)(nil)
