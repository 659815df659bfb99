package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	facilitiesDomain "github.com/Flinnker/Gym/internal/facilities/domain"
	facilitiesPersistence "github.com/Flinnker/Gym/internal/facilities/infrastructure/persistence"
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database/sqlite"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/lock"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/migrations"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	subscriptionPersistence "github.com/Flinnker/Gym/internal/subscriptions/infrastructure/persistence"
	"github.com/Flinnker/Gym/internal/training/domain"
	"github.com/Flinnker/Gym/internal/training/infrastructure/persistence"
)

var sessionDate = schedulingDomain.NewDate(2026, time.March, 2)

type fixture struct {
	sessions      *persistence.TrainingSessionRepository
	trainers      *persistence.TrainerRepository
	participants  *persistence.ParticipantRepository
	rooms         *facilitiesPersistence.GymRoomRepository
	gyms          *facilitiesPersistence.GymRepository
	subscriptions *subscriptionPersistence.SubscriptionRepository
	outbox        *outbox.SQLRepository
	uow           *database.UnitOfWork
	locker        *lock.MemoryLocker
	clock         *sharedDomain.FixedClock

	// seeded by newFixture
	subscriptionID uuid.UUID
	gymID          uuid.UUID
	roomID         uuid.UUID
	trainerID      uuid.UUID
}

// newFixture seeds a subscription of the given tier with one gym, one room
// of spots places and one trainer working there. The clock starts the day
// before sessionDate.
func newFixture(t *testing.T, tier subscriptionDomain.SubscriptionType, spots int) *fixture {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "gym.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, migrations.Run(ctx, conn))

	f := &fixture{
		sessions:      persistence.NewTrainingSessionRepository(conn),
		trainers:      persistence.NewTrainerRepository(conn),
		participants:  persistence.NewParticipantRepository(conn),
		rooms:         facilitiesPersistence.NewGymRoomRepository(conn),
		gyms:          facilitiesPersistence.NewGymRepository(conn),
		subscriptions: subscriptionPersistence.NewSubscriptionRepository(conn),
		outbox:        outbox.NewSQLRepository(conn),
		uow:           database.NewUnitOfWork(conn),
		locker:        lock.NewMemoryLocker(lock.DefaultConfig()),
		clock:         sharedDomain.NewFixedClock(sessionDate.AddDays(-1).At(schedulingDomain.NewTimeOfDay(12, 0, 0))),
	}

	sub, err := subscriptionDomain.NewSubscription(uuid.Nil, tier)
	require.NoError(t, err)
	gym, err := facilitiesDomain.NewGym(uuid.Nil, sub.ID(), "Downtown", tier)
	require.NoError(t, err)
	room, err := facilitiesDomain.NewGymRoom(uuid.Nil, gym.ID(), "Studio A", tier, spots)
	require.NoError(t, err)
	trainer := domain.NewTrainer(uuid.Nil, "Alex")

	require.NoError(t, sub.AddGym(gym.ID()))
	require.NoError(t, sub.AddGymRoom(room.ID()))
	require.NoError(t, gym.AddGymRoom(room.ID()))
	require.NoError(t, gym.AddTrainer(trainer.ID()))

	require.NoError(t, f.subscriptions.Save(ctx, sub))
	require.NoError(t, f.gyms.Save(ctx, gym))
	require.NoError(t, f.rooms.Save(ctx, room))
	require.NoError(t, f.trainers.Save(ctx, trainer))

	f.subscriptionID, f.gymID, f.roomID, f.trainerID = sub.ID(), gym.ID(), room.ID(), trainer.ID()
	return f
}

func (f *fixture) scheduleHandler() *ScheduleSessionHandler {
	return NewScheduleSessionHandler(f.sessions, f.trainers, f.rooms, f.gyms, f.subscriptions, f.outbox, f.uow, f.locker, f.clock)
}

func (f *fixture) cancelSessionHandler() *CancelSessionHandler {
	return NewCancelSessionHandler(f.sessions, f.trainers, f.rooms, f.gyms, f.subscriptions, f.outbox, f.uow, f.locker)
}

func (f *fixture) reserveHandler() *ReserveSpotHandler {
	return NewReserveSpotHandler(f.sessions, f.participants, f.outbox, f.uow, f.locker, f.clock)
}

func (f *fixture) cancelReservationHandler() *CancelReservationHandler {
	return NewCancelReservationHandler(f.sessions, f.participants, f.outbox, f.uow, f.locker, f.clock)
}

// schedule books a session in the seeded room with the seeded trainer.
func (f *fixture) schedule(t *testing.T, start, end string, size int) uuid.UUID {
	t.Helper()
	result, err := f.scheduleHandler().Handle(context.Background(), ScheduleSessionCommand{
		GymRoomID:   f.roomID,
		TrainerID:   f.trainerID,
		Date:        sessionDate,
		TimeRange:   timeRange(t, start, end),
		SessionSize: size,
	})
	require.NoError(t, err)
	return result.SessionID
}

func (f *fixture) newParticipant(t *testing.T, name string) uuid.UUID {
	t.Helper()
	result, err := NewCreateParticipantHandler(f.participants, f.outbox, f.uow).Handle(context.Background(), CreateParticipantCommand{Name: name})
	require.NoError(t, err)
	return result.ParticipantID
}

// drainOutbox marks everything in the outbox as published.
func (f *fixture) drainOutbox(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	msgs, err := f.outbox.GetUnpublished(ctx, 1000)
	require.NoError(t, err)
	for _, msg := range msgs {
		require.NoError(t, f.outbox.MarkPublished(ctx, msg.ID))
	}
}

// outboxKeys returns the routing keys waiting in the outbox, oldest first.
func (f *fixture) outboxKeys(t *testing.T) []string {
	t.Helper()
	msgs, err := f.outbox.GetUnpublished(context.Background(), 1000)
	require.NoError(t, err)
	keys := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		keys = append(keys, msg.RoutingKey)
	}
	return keys
}

func timeRange(t *testing.T, start, end string) schedulingDomain.TimeRange {
	t.Helper()
	r, err := schedulingDomain.ParseTimeRange(start, end)
	require.NoError(t, err)
	return r
}
