package persistence

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/persistence"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// AdministratorRepository stores administrators in the administrators table.
type AdministratorRepository struct {
	store *persistence.StateStore
}

// NewAdministratorRepository creates an administrator repository over conn.
func NewAdministratorRepository(conn database.Connection) *AdministratorRepository {
	return &AdministratorRepository{store: persistence.NewStateStore(conn, "administrators", "subscription_id")}
}

// Save inserts or updates an administrator.
func (r *AdministratorRepository) Save(ctx context.Context, administrator *domain.Administrator) error {
	var subscriptionID any
	if administrator.HasSubscription() {
		subscriptionID = administrator.SubscriptionID()
	}

	version, err := r.store.Save(ctx, persistence.Record{
		ID:        administrator.ID(),
		Version:   administrator.Version(),
		State:     administrator.Snapshot(),
		Lookups:   []any{subscriptionID},
		CreatedAt: administrator.CreatedAt(),
		UpdatedAt: administrator.UpdatedAt(),
	})
	if err != nil {
		return err
	}
	administrator.SetVersion(version)
	return nil
}

// FindByID finds an administrator by its id.
func (r *AdministratorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Administrator, error) {
	row, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return rowToAdministrator(row)
}

// FindBySubscriptionID finds the administrator holding a subscription.
func (r *AdministratorRepository) FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) (*domain.Administrator, error) {
	rows, err := r.store.LoadBy(ctx, "subscription_id", subscriptionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sharedDomain.ErrAggregateNotFound
	}
	return rowToAdministrator(rows[0])
}

func rowToAdministrator(row persistence.Row) (*domain.Administrator, error) {
	var snap domain.AdministratorSnapshot
	if err := row.Decode(&snap); err != nil {
		return nil, err
	}
	return domain.RehydrateAdministrator(row.Base(), snap), nil
}

var _ domain.AdministratorRepository = (*AdministratorRepository)(nil)
