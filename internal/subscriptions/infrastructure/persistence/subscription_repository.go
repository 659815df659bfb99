package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// SubscriptionRepository stores subscriptions in the subscriptions table.
type SubscriptionRepository struct {
	store *persistence.StateStore
}

// NewSubscriptionRepository creates a subscription repository over conn.
func NewSubscriptionRepository(conn database.Connection) *SubscriptionRepository {
	return &SubscriptionRepository{store: persistence.NewStateStore(conn, "subscriptions")}
}

// Save inserts or updates a subscription.
func (r *SubscriptionRepository) Save(ctx context.Context, subscription *domain.Subscription) error {
	version, err := r.store.Save(ctx, persistence.Record{
		ID:        subscription.ID(),
		Version:   subscription.Version(),
		State:     subscription.Snapshot(),
		CreatedAt: subscription.CreatedAt(),
		UpdatedAt: subscription.UpdatedAt(),
	})
	if err != nil {
		return err
	}
	subscription.SetVersion(version)
	return nil
}

// FindByID finds a subscription by its id.
func (r *SubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	var snap domain.SubscriptionSnapshot
	if err := row.Decode(&snap); err != nil {
		return nil, err
	}
	subscription := domain.RehydrateSubscription(row.Base(), snap)
	r.store.CheckQuota(ctx, row.ID, subscription)
	return subscription, nil
}

var _ domain.SubscriptionRepository = (*SubscriptionRepository)(nil)
