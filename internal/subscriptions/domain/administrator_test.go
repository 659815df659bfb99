package domain_test

import (
	"testing"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdministrator_SetSubscription(t *testing.T) {
	admin := domain.NewAdministrator(uuid.Nil)
	assert.False(t, admin.HasSubscription())

	first := uuid.New()
	require.NoError(t, admin.SetSubscription(first))
	assert.Equal(t, first, admin.SubscriptionID())

	err := admin.SetSubscription(first)
	require.ErrorIs(t, err, domain.ErrSubscriptionAlreadyAssigned)
	assert.Equal(t, sharedDomain.KindDuplicate, sharedDomain.KindOf(err))

	second := uuid.New()
	require.NoError(t, admin.SetSubscription(second))

	events := admin.DomainEvents()
	require.Len(t, events, 3)
	assigned, ok := events[2].(*domain.SubscriptionAssigned)
	require.True(t, ok)
	assert.Equal(t, second, assigned.SubscriptionID)
	assert.Equal(t, first, assigned.PreviousSubscriptionID)
}

func TestRehydrateAdministrator(t *testing.T) {
	admin := domain.NewAdministrator(uuid.New())
	require.NoError(t, admin.SetSubscription(uuid.New()))

	base := sharedDomain.RehydrateBaseAggregateRoot(admin.ID(), 1, admin.CreatedAt(), admin.UpdatedAt())
	restored := domain.RehydrateAdministrator(base, admin.Snapshot())

	assert.Equal(t, admin.SubscriptionID(), restored.SubscriptionID())
	assert.Empty(t, restored.DomainEvents())
}
