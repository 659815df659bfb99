package domain_test

import (
	"testing"
	"time"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGymRoom(t *testing.T, tier subscriptionDomain.SubscriptionType, spots int) *domain.GymRoom {
	t.Helper()
	room, err := domain.NewGymRoom(uuid.Nil, uuid.New(), "Studio A", tier, spots)
	require.NoError(t, err)
	return room
}

func timeRange(t *testing.T, start, end string) schedulingDomain.TimeRange {
	t.Helper()
	r, err := schedulingDomain.ParseTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewGymRoom_Validation(t *testing.T) {
	_, err := domain.NewGymRoom(uuid.Nil, uuid.New(), "Studio", subscriptionDomain.SubscriptionType{}, 10)
	assert.ErrorIs(t, err, domain.ErrSubscriptionTypeRequired)

	_, err = domain.NewGymRoom(uuid.Nil, uuid.New(), "Studio", subscriptionDomain.Free, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSpotCount)
}

func TestGymRoom_DailySessionQuota(t *testing.T) {
	room := newGymRoom(t, subscriptionDomain.Free, 20)

	for i := 0; i < 4; i++ {
		require.NoError(t, room.AddTrainingSession(uuid.New()))
	}

	err := room.AddTrainingSession(uuid.New())
	require.ErrorIs(t, err, domain.ErrDailySessionQuotaExceeded)
	assert.Equal(t, 4, room.DailySessionCount())
	assert.Equal(t, 16, room.AvailableSpotCount())
}

func TestGymRoom_RemoveTrainingSession(t *testing.T) {
	room := newGymRoom(t, subscriptionDomain.Base, 5)
	sessionID := uuid.New()

	assert.ErrorIs(t, room.RemoveTrainingSession(sessionID), domain.ErrRoomHasNoSessions)

	require.NoError(t, room.AddTrainingSession(sessionID))
	assert.ErrorIs(t, room.AddTrainingSession(sessionID), domain.ErrSessionAlreadyInRoom)
	assert.ErrorIs(t, room.RemoveTrainingSession(uuid.New()), domain.ErrSessionNotInRoom)

	require.NoError(t, room.RemoveTrainingSession(sessionID))
	assert.Equal(t, 5, room.AvailableSpotCount())
}

func TestGymRoom_ScheduleDelegation(t *testing.T) {
	room := newGymRoom(t, subscriptionDomain.Pro, 5)
	date := schedulingDomain.NewDate(2000, time.January, 2)
	morning := timeRange(t, "09:00", "10:00")

	require.NoError(t, room.ReserveTime(date, morning))
	assert.False(t, room.IsFree(date, timeRange(t, "09:30", "10:30")))
	assert.True(t, room.IsFree(date, timeRange(t, "10:00", "11:00")))

	err := room.ReserveTime(date, timeRange(t, "09:15", "09:45"))
	require.ErrorIs(t, err, schedulingDomain.ErrOverlap)

	assert.ErrorIs(t, room.ReleaseTime(date, timeRange(t, "09:00", "09:30")), schedulingDomain.ErrRangeNotFound)
	require.NoError(t, room.ReleaseTime(date, morning))
	assert.True(t, room.IsFree(date, morning))
}

func TestGymRoom_ReserveTime_UnsetRange(t *testing.T) {
	room := newGymRoom(t, subscriptionDomain.Pro, 5)
	date := schedulingDomain.NewDate(2000, time.January, 2)

	err := room.ReserveTime(date, schedulingDomain.TimeRange{})

	require.ErrorIs(t, err, schedulingDomain.ErrTimeRangeRequired)
	assert.Empty(t, room.Schedule())

	base := sharedDomain.RehydrateBaseAggregateRoot(room.ID(), 1, room.CreatedAt(), room.UpdatedAt())
	_, err = domain.RehydrateGymRoom(base, room.Snapshot())
	assert.NoError(t, err)
}

func TestRehydrateGymRoom(t *testing.T) {
	room := newGymRoom(t, subscriptionDomain.Free, 8)
	date := schedulingDomain.NewDate(2000, time.January, 2)
	require.NoError(t, room.ReserveTime(date, timeRange(t, "09:00", "10:00")))
	require.NoError(t, room.AddTrainingSession(uuid.New()))

	base := sharedDomain.RehydrateBaseAggregateRoot(room.ID(), 4, room.CreatedAt(), room.UpdatedAt())
	restored, err := domain.RehydrateGymRoom(base, room.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, room.Snapshot(), restored.Snapshot())
	assert.False(t, restored.IsFree(date, timeRange(t, "09:30", "09:45")))
}

func TestGymRoom_CheckSessionSize(t *testing.T) {
	room := newGymRoom(t, subscriptionDomain.Base, 10)

	assert.NoError(t, room.CheckSessionSize(10))
	err := room.CheckSessionSize(11)
	assert.ErrorIs(t, err, domain.ErrSessionTooLarge)
	assert.Equal(t, sharedDomain.KindValidation, sharedDomain.KindOf(err))
}
