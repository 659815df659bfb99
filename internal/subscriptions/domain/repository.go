package domain

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository persists subscriptions.
type SubscriptionRepository interface {
	Save(ctx context.Context, subscription *Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
}

// AdministratorRepository persists administrators.
type AdministratorRepository interface {
	Save(ctx context.Context, administrator *Administrator) error
	FindByID(ctx context.Context, id uuid.UUID) (*Administrator, error)
	FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) (*Administrator, error)
}
