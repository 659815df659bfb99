package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
)

// GymRepository stores gyms in the gyms table.
type GymRepository struct {
	store *persistence.StateStore
}

// NewGymRepository creates a gym repository over conn.
func NewGymRepository(conn database.Connection) *GymRepository {
	return &GymRepository{store: persistence.NewStateStore(conn, "gyms", "subscription_id")}
}

// Save inserts or updates a gym.
func (r *GymRepository) Save(ctx context.Context, gym *domain.Gym) error {
	version, err := r.store.Save(ctx, persistence.Record{
		ID:        gym.ID(),
		Version:   gym.Version(),
		State:     gym.Snapshot(),
		Lookups:   []any{gym.SubscriptionID()},
		CreatedAt: gym.CreatedAt(),
		UpdatedAt: gym.UpdatedAt(),
	})
	if err != nil {
		return err
	}
	gym.SetVersion(version)
	return nil
}

// FindByID finds a gym by its id.
func (r *GymRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.rowToGym(ctx, row)
}

// FindBySubscriptionID returns the gyms of a subscription, oldest first.
func (r *GymRepository) FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.Gym, error) {
	rows, err := r.store.LoadBy(ctx, "subscription_id", subscriptionID)
	if err != nil {
		return nil, err
	}

	gyms := make([]*domain.Gym, 0, len(rows))
	for _, row := range rows {
		gym, err := r.rowToGym(ctx, row)
		if err != nil {
			return nil, err
		}
		gyms = append(gyms, gym)
	}
	return gyms, nil
}

func (r *GymRepository) rowToGym(ctx context.Context, row persistence.Row) (*domain.Gym, error) {
	var snap domain.GymSnapshot
	if err := row.Decode(&snap); err != nil {
		return nil, err
	}
	gym := domain.RehydrateGym(row.Base(), snap)
	r.store.CheckQuota(ctx, row.ID, gym)
	return gym, nil
}

var _ domain.GymRepository = (*GymRepository)(nil)
