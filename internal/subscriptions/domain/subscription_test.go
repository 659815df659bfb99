package domain_test

import (
	"testing"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscription(t *testing.T, subscriptionType domain.SubscriptionType) *domain.Subscription {
	t.Helper()
	s, err := domain.NewSubscription(uuid.Nil, subscriptionType)
	require.NoError(t, err)
	return s
}

func TestNewSubscription(t *testing.T) {
	s := newSubscription(t, domain.Pro)

	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.True(t, s.Active())
	assert.Equal(t, 3, s.MaxGyms())
	assert.Equal(t, sharedDomain.Unlimited, s.MaxRooms())
	assert.Equal(t, sharedDomain.Unlimited, s.MaxDailySessions())
	assert.Equal(t, 599, s.Price())

	events := s.DomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*domain.SubscriptionCreated)
	require.True(t, ok)
	assert.Equal(t, "Pro", created.SubscriptionType)
	assert.Equal(t, domain.RoutingKeySubscriptionCreated, created.RoutingKey())
}

func TestNewSubscription_RequiresType(t *testing.T) {
	_, err := domain.NewSubscription(uuid.Nil, domain.SubscriptionType{})

	assert.ErrorIs(t, err, domain.ErrUnknownSubscriptionType)
}

func TestSubscription_AddGym_UpToQuota(t *testing.T) {
	tests := []struct {
		name  string
		tier  domain.SubscriptionType
		quota int
	}{
		{name: "free", tier: domain.Free, quota: 1},
		{name: "base", tier: domain.Base, quota: 1},
		{name: "pro", tier: domain.Pro, quota: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSubscription(t, tt.tier)
			for i := 0; i < tt.quota; i++ {
				require.NoError(t, s.AddGym(uuid.New()))
			}

			err := s.AddGym(uuid.New())
			require.ErrorIs(t, err, domain.ErrGymQuotaExceeded)
			assert.Equal(t, sharedDomain.KindQuotaExceeded, sharedDomain.KindOf(err))
			assert.Equal(t, tt.quota, s.GymCount())
		})
	}
}

func TestSubscription_AddGym_Duplicate(t *testing.T) {
	s := newSubscription(t, domain.Pro)
	gymID := uuid.New()
	require.NoError(t, s.AddGym(gymID))

	assert.ErrorIs(t, s.AddGym(gymID), domain.ErrGymAlreadyAdded)
}

func TestSubscription_RemoveGym(t *testing.T) {
	s := newSubscription(t, domain.Free)
	gymID := uuid.New()

	assert.ErrorIs(t, s.RemoveGym(gymID), domain.ErrNoGyms)

	require.NoError(t, s.AddGym(gymID))
	assert.ErrorIs(t, s.RemoveGym(uuid.New()), domain.ErrGymNotInSubscription)

	require.NoError(t, s.RemoveGym(gymID))
	assert.Equal(t, 0, s.GymCount())
	require.NoError(t, s.AddGym(gymID), "removed gym can be re-added")
}

func TestSubscription_RoomsAndSessions(t *testing.T) {
	s := newSubscription(t, domain.Free)

	require.NoError(t, s.AddGymRoom(uuid.New()))
	assert.ErrorIs(t, s.AddGymRoom(uuid.New()), domain.ErrGymRoomQuotaExceeded)

	for i := 0; i < 4; i++ {
		require.NoError(t, s.AddTrainingSession(uuid.New()))
	}
	assert.ErrorIs(t, s.AddTrainingSession(uuid.New()), domain.ErrSessionQuotaExceeded)
	assert.ErrorIs(t, s.RemoveTrainingSession(uuid.New()), domain.ErrSessionNotInSubscription)
}

func TestSubscription_UsageEvents(t *testing.T) {
	s := newSubscription(t, domain.Base)
	s.ClearDomainEvents()
	roomID, sessionID := uuid.New(), uuid.New()

	require.NoError(t, s.AddGymRoom(roomID))
	require.NoError(t, s.AddTrainingSession(sessionID))
	require.NoError(t, s.RemoveTrainingSession(sessionID))
	require.NoError(t, s.RemoveGymRoom(roomID))
	assert.Error(t, s.RemoveGymRoom(roomID))

	events := s.DomainEvents()
	require.Len(t, events, 4)
	keys := make([]string, 0, len(events))
	for _, event := range events {
		keys = append(keys, event.RoutingKey())
	}
	assert.Equal(t, []string{
		domain.RoutingKeySubscriptionGymRoomAdded,
		domain.RoutingKeySubscriptionSessionAdded,
		domain.RoutingKeySubscriptionSessionRemoved,
		domain.RoutingKeySubscriptionGymRoomRemoved,
	}, keys)

	added, ok := events[1].(*domain.SubscriptionUsageChanged)
	require.True(t, ok)
	assert.Equal(t, sessionID, added.MemberID)
	assert.Equal(t, 1, added.MemberCount)
	assert.Equal(t, s.ID(), added.AggregateID())
}

func TestSubscription_OverQuotaAfterTierChange(t *testing.T) {
	s := newSubscription(t, domain.Base)
	require.NoError(t, s.AddGymRoom(uuid.New()))
	require.NoError(t, s.AddGymRoom(uuid.New()))
	assert.Empty(t, s.OverQuota())

	snap := s.Snapshot()
	snap.Type = domain.Free
	base := sharedDomain.RehydrateBaseAggregateRoot(s.ID(), 2, s.CreatedAt(), s.UpdatedAt())
	restored := domain.RehydrateSubscription(base, snap)

	assert.Equal(t, []string{"gym_rooms"}, restored.OverQuota())
	assert.ErrorIs(t, restored.AddGymRoom(uuid.New()), domain.ErrGymRoomQuotaExceeded)
}

func TestSubscription_Deactivate(t *testing.T) {
	s := newSubscription(t, domain.Base)
	gymID := uuid.New()
	require.NoError(t, s.AddGym(gymID))

	require.NoError(t, s.Deactivate())
	assert.False(t, s.Active())
	assert.ErrorIs(t, s.Deactivate(), domain.ErrSubscriptionInactive)

	assert.ErrorIs(t, s.AddGymRoom(uuid.New()), domain.ErrSubscriptionInactive)
	require.NoError(t, s.RemoveGym(gymID), "inactive subscriptions can still shed gyms")
}

func TestRehydrateSubscription(t *testing.T) {
	s := newSubscription(t, domain.Base)
	require.NoError(t, s.AddGym(uuid.New()))
	require.NoError(t, s.AddGymRoom(uuid.New()))

	base := sharedDomain.RehydrateBaseAggregateRoot(s.ID(), 3, s.CreatedAt(), s.UpdatedAt())
	restored := domain.RehydrateSubscription(base, s.Snapshot())

	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assert.Equal(t, 3, restored.Version())
	assert.Empty(t, restored.DomainEvents())
	assert.ErrorIs(t, restored.AddGym(uuid.New()), domain.ErrGymQuotaExceeded)
}
