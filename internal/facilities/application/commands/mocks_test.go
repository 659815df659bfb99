package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	trainingDomain "github.com/Flinnker/Gym/internal/training/domain"
)

type mockGymRepo struct {
	mock.Mock
}

func (m *mockGymRepo) Save(ctx context.Context, gym *domain.Gym) error {
	args := m.Called(ctx, gym)
	return args.Error(0)
}

func (m *mockGymRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gym), args.Error(1)
}

func (m *mockGymRepo) FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*domain.Gym, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Gym), args.Error(1)
}

type mockGymRoomRepo struct {
	mock.Mock
}

func (m *mockGymRoomRepo) Save(ctx context.Context, room *domain.GymRoom) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *mockGymRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.GymRoom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymRoom), args.Error(1)
}

func (m *mockGymRoomRepo) FindByGymID(ctx context.Context, gymID uuid.UUID) ([]*domain.GymRoom, error) {
	args := m.Called(ctx, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GymRoom), args.Error(1)
}

func (m *mockGymRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Save(ctx context.Context, subscription *subscriptionDomain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionDomain.Subscription), args.Error(1)
}

type mockTrainerRepo struct {
	mock.Mock
}

func (m *mockTrainerRepo) Save(ctx context.Context, trainer *trainingDomain.Trainer) error {
	args := m.Called(ctx, trainer)
	return args.Error(0)
}

func (m *mockTrainerRepo) FindByID(ctx context.Context, id uuid.UUID) (*trainingDomain.Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trainingDomain.Trainer), args.Error(1)
}

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, err, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetDead(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) Requeue(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// passUnitOfWork returns a unit of work that hands the caller's context
// through and expects exactly one commit or rollback.
func passUnitOfWork(commit bool) *mockUnitOfWork {
	uow := new(mockUnitOfWork)
	uow.On("Begin", mock.Anything).Return(context.Background(), nil)
	if commit {
		uow.On("Commit", mock.Anything).Return(nil)
	} else {
		uow.On("Rollback", mock.Anything).Return(nil)
	}
	return uow
}

// keyLocker records the keys it was asked for.
type keyLocker struct {
	keys []string
}

func (l *keyLocker) Acquire(_ context.Context, key string) (func(context.Context) error, error) {
	l.keys = append(l.keys, key)
	return func(context.Context) error { return nil }, nil
}
