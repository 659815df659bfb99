package domain

import (
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

// Administrator owns at most one subscription at a time.
type Administrator struct {
	sharedDomain.BaseAggregateRoot
	subscriptionID uuid.UUID
}

// NewAdministrator creates an administrator without a subscription.
func NewAdministrator(id uuid.UUID) *Administrator {
	a := &Administrator{BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(id)}
	a.AddDomainEvent(&AdministratorCreated{
		BaseEvent: sharedDomain.NewBaseEvent(a.ID(), AdministratorAggregateType, RoutingKeyAdministratorCreated),
	})
	return a
}

// SubscriptionID returns the assigned subscription, or uuid.Nil.
func (a *Administrator) SubscriptionID() uuid.UUID { return a.subscriptionID }

// HasSubscription reports whether a subscription is assigned.
func (a *Administrator) HasSubscription() bool { return a.subscriptionID != uuid.Nil }

// SetSubscription replaces the current subscription.
func (a *Administrator) SetSubscription(subscriptionID uuid.UUID) error {
	if a.subscriptionID == subscriptionID {
		return ErrSubscriptionAlreadyAssigned
	}
	previous := a.subscriptionID
	a.subscriptionID = subscriptionID
	a.AddDomainEvent(&SubscriptionAssigned{
		BaseEvent:              sharedDomain.NewBaseEvent(a.ID(), AdministratorAggregateType, RoutingKeySubscriptionAssigned),
		SubscriptionID:         subscriptionID,
		PreviousSubscriptionID: previous,
	})
	return nil
}

// AdministratorSnapshot is the persisted state of an Administrator.
type AdministratorSnapshot struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
}

func (a *Administrator) Snapshot() AdministratorSnapshot {
	return AdministratorSnapshot{SubscriptionID: a.subscriptionID}
}

// RehydrateAdministrator recreates an administrator from persisted state.
func RehydrateAdministrator(base sharedDomain.BaseAggregateRoot, snap AdministratorSnapshot) *Administrator {
	return &Administrator{BaseAggregateRoot: base, subscriptionID: snap.SubscriptionID}
}
