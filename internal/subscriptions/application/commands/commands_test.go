package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

func TestCreateSubscriptionHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a subscription on the named tier", func(t *testing.T) {
		f := newFixture(t)
		handler := NewCreateSubscriptionHandler(f.subscriptions, f.administrators, f.outbox, f.uow, f.locker)

		result, err := handler.Handle(ctx, CreateSubscriptionCommand{Type: "Pro"})

		require.NoError(t, err)
		stored, err := f.subscriptions.FindByID(ctx, result.SubscriptionID)
		require.NoError(t, err)
		assert.Equal(t, domain.Pro, stored.Type())
		assert.Equal(t, []string{domain.RoutingKeySubscriptionCreated}, f.outboxKeys(t))
	})

	t.Run("assigns the new subscription to an administrator", func(t *testing.T) {
		f := newFixture(t)
		admin, err := NewCreateAdministratorHandler(f.administrators, f.outbox, f.uow).Handle(ctx, CreateAdministratorCommand{})
		require.NoError(t, err)

		handler := NewCreateSubscriptionHandler(f.subscriptions, f.administrators, f.outbox, f.uow, f.locker)
		result, err := handler.Handle(ctx, CreateSubscriptionCommand{Type: "Free", AdministratorID: admin.AdministratorID})
		require.NoError(t, err)

		stored, err := f.administrators.FindByID(ctx, admin.AdministratorID)
		require.NoError(t, err)
		assert.Equal(t, result.SubscriptionID, stored.SubscriptionID())
		assert.Equal(t, []string{
			domain.RoutingKeyAdministratorCreated,
			domain.RoutingKeySubscriptionCreated,
			domain.RoutingKeySubscriptionAssigned,
		}, f.outboxKeys(t))
	})

	t.Run("rejects an unknown tier", func(t *testing.T) {
		f := newFixture(t)
		handler := NewCreateSubscriptionHandler(f.subscriptions, f.administrators, f.outbox, f.uow, f.locker)

		_, err := handler.Handle(ctx, CreateSubscriptionCommand{Type: "Platinum"})

		assert.ErrorIs(t, err, domain.ErrUnknownSubscriptionType)
		assert.Empty(t, f.outboxKeys(t))
	})

	t.Run("rolls back when the administrator is missing", func(t *testing.T) {
		f := newFixture(t)
		handler := NewCreateSubscriptionHandler(f.subscriptions, f.administrators, f.outbox, f.uow, f.locker)

		_, err := handler.Handle(ctx, CreateSubscriptionCommand{Type: "Base", AdministratorID: uuid.New()})

		assert.ErrorIs(t, err, sharedDomain.ErrAggregateNotFound)
		assert.Empty(t, f.outboxKeys(t))
	})
}

func TestAssignSubscriptionHandler_Handle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin, err := NewCreateAdministratorHandler(f.administrators, f.outbox, f.uow).Handle(ctx, CreateAdministratorCommand{})
	require.NoError(t, err)
	created, err := NewCreateSubscriptionHandler(f.subscriptions, f.administrators, f.outbox, f.uow, f.locker).
		Handle(ctx, CreateSubscriptionCommand{Type: "Base"})
	require.NoError(t, err)

	handler := NewAssignSubscriptionHandler(f.administrators, f.subscriptions, f.outbox, f.uow, f.locker)
	cmd := AssignSubscriptionCommand{AdministratorID: admin.AdministratorID, SubscriptionID: created.SubscriptionID}

	require.NoError(t, handler.Handle(ctx, cmd))

	err = handler.Handle(ctx, cmd)
	assert.ErrorIs(t, err, domain.ErrSubscriptionAlreadyAssigned)

	err = handler.Handle(ctx, AssignSubscriptionCommand{AdministratorID: admin.AdministratorID, SubscriptionID: uuid.New()})
	assert.ErrorIs(t, err, sharedDomain.ErrAggregateNotFound)

	found, err := f.administrators.FindBySubscriptionID(ctx, created.SubscriptionID)
	require.NoError(t, err)
	assert.Equal(t, admin.AdministratorID, found.ID())
}

func TestSubscriptionGymHandlers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := NewCreateSubscriptionHandler(f.subscriptions, f.administrators, f.outbox, f.uow, f.locker).
		Handle(ctx, CreateSubscriptionCommand{Type: "Free"})
	require.NoError(t, err)
	subscriptionID := created.SubscriptionID

	add := NewAddGymToSubscriptionHandler(f.subscriptions, f.outbox, f.uow, f.locker)
	remove := NewRemoveGymFromSubscriptionHandler(f.subscriptions, f.outbox, f.uow, f.locker)
	deactivate := NewDeactivateSubscriptionHandler(f.subscriptions, f.outbox, f.uow, f.locker)

	gymID := uuid.New()
	require.NoError(t, add.Handle(ctx, AddGymToSubscriptionCommand{SubscriptionID: subscriptionID, GymID: gymID}))

	err = add.Handle(ctx, AddGymToSubscriptionCommand{SubscriptionID: subscriptionID, GymID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrGymQuotaExceeded)

	err = remove.Handle(ctx, RemoveGymFromSubscriptionCommand{SubscriptionID: subscriptionID, GymID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrGymNotInSubscription)

	require.NoError(t, remove.Handle(ctx, RemoveGymFromSubscriptionCommand{SubscriptionID: subscriptionID, GymID: gymID}))

	err = remove.Handle(ctx, RemoveGymFromSubscriptionCommand{SubscriptionID: subscriptionID, GymID: gymID})
	assert.ErrorIs(t, err, domain.ErrNoGyms)

	require.NoError(t, deactivate.Handle(ctx, DeactivateSubscriptionCommand{SubscriptionID: subscriptionID}))
	err = add.Handle(ctx, AddGymToSubscriptionCommand{SubscriptionID: subscriptionID, GymID: gymID})
	assert.ErrorIs(t, err, domain.ErrSubscriptionInactive)

	stored, err := f.subscriptions.FindByID(ctx, subscriptionID)
	require.NoError(t, err)
	assert.Zero(t, stored.GymCount())
	assert.False(t, stored.Active())
	assert.Equal(t, 4, stored.Version())
}
