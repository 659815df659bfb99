package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	trainingDomain "github.com/Flinnker/Gym/internal/training/domain"
)

func newGym(t *testing.T, tier subscriptionDomain.SubscriptionType) *domain.Gym {
	t.Helper()
	gym, err := domain.NewGym(uuid.Nil, uuid.New(), "Downtown", tier)
	require.NoError(t, err)
	gym.ClearDomainEvents()
	return gym
}

func TestAddTrainerToGymHandler_Handle(t *testing.T) {
	t.Run("adds an existing trainer", func(t *testing.T) {
		gym := newGym(t, subscriptionDomain.Base)
		trainer := trainingDomain.NewTrainer(uuid.Nil, "Alex")
		gymRepo := new(mockGymRepo)
		trainerRepo := new(mockTrainerRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := passUnitOfWork(true)

		gymRepo.On("FindByID", mock.Anything, gym.ID()).Return(gym, nil)
		trainerRepo.On("FindByID", mock.Anything, trainer.ID()).Return(trainer, nil)
		gymRepo.On("Save", mock.Anything, gym).Return(nil)
		outboxRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil)

		handler := NewAddTrainerToGymHandler(gymRepo, trainerRepo, outboxRepo, uow, &keyLocker{})
		err := handler.Handle(context.Background(), AddTrainerToGymCommand{GymID: gym.ID(), TrainerID: trainer.ID()})

		require.NoError(t, err)
		assert.True(t, gym.HasTrainer(trainer.ID()))
		gymRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("rejects a trainer added twice", func(t *testing.T) {
		gym := newGym(t, subscriptionDomain.Base)
		trainer := trainingDomain.NewTrainer(uuid.Nil, "Alex")
		require.NoError(t, gym.AddTrainer(trainer.ID()))
		gymRepo := new(mockGymRepo)
		trainerRepo := new(mockTrainerRepo)

		gymRepo.On("FindByID", mock.Anything, gym.ID()).Return(gym, nil)
		trainerRepo.On("FindByID", mock.Anything, trainer.ID()).Return(trainer, nil)

		handler := NewAddTrainerToGymHandler(gymRepo, trainerRepo, new(mockOutboxRepo), passUnitOfWork(false), &keyLocker{})
		err := handler.Handle(context.Background(), AddTrainerToGymCommand{GymID: gym.ID(), TrainerID: trainer.ID()})

		assert.ErrorIs(t, err, domain.ErrTrainerAlreadyInGym)
		assert.Equal(t, sharedDomain.KindDuplicate, sharedDomain.KindOf(err))
		gymRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("requires the trainer to exist", func(t *testing.T) {
		gym := newGym(t, subscriptionDomain.Base)
		trainerID := uuid.New()
		gymRepo := new(mockGymRepo)
		trainerRepo := new(mockTrainerRepo)

		gymRepo.On("FindByID", mock.Anything, gym.ID()).Return(gym, nil)
		trainerRepo.On("FindByID", mock.Anything, trainerID).Return(nil, sharedDomain.ErrAggregateNotFound)

		handler := NewAddTrainerToGymHandler(gymRepo, trainerRepo, new(mockOutboxRepo), passUnitOfWork(false), &keyLocker{})
		err := handler.Handle(context.Background(), AddTrainerToGymCommand{GymID: gym.ID(), TrainerID: trainerID})

		assert.ErrorIs(t, err, sharedDomain.ErrAggregateNotFound)
		assert.False(t, gym.HasTrainer(trainerID))
	})
}

func TestRemoveTrainerFromGymHandler_Handle(t *testing.T) {
	t.Run("removes a member trainer", func(t *testing.T) {
		gym := newGym(t, subscriptionDomain.Pro)
		trainerID := uuid.New()
		require.NoError(t, gym.AddTrainer(trainerID))
		gym.ClearDomainEvents()
		gymRepo := new(mockGymRepo)
		outboxRepo := new(mockOutboxRepo)

		gymRepo.On("FindByID", mock.Anything, gym.ID()).Return(gym, nil)
		gymRepo.On("Save", mock.Anything, gym).Return(nil)
		outboxRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil)

		handler := NewRemoveTrainerFromGymHandler(gymRepo, outboxRepo, passUnitOfWork(true), &keyLocker{})
		err := handler.Handle(context.Background(), RemoveTrainerFromGymCommand{GymID: gym.ID(), TrainerID: trainerID})

		require.NoError(t, err)
		assert.False(t, gym.HasTrainer(trainerID))
	})

	t.Run("rejects a trainer that is not a member", func(t *testing.T) {
		gym := newGym(t, subscriptionDomain.Pro)
		gymRepo := new(mockGymRepo)
		gymRepo.On("FindByID", mock.Anything, gym.ID()).Return(gym, nil)

		handler := NewRemoveTrainerFromGymHandler(gymRepo, new(mockOutboxRepo), passUnitOfWork(false), &keyLocker{})
		err := handler.Handle(context.Background(), RemoveTrainerFromGymCommand{GymID: gym.ID(), TrainerID: uuid.New()})

		assert.ErrorIs(t, err, domain.ErrTrainerNotInGym)
	})

	t.Run("rolls back when the outbox fails", func(t *testing.T) {
		gym := newGym(t, subscriptionDomain.Pro)
		trainerID := uuid.New()
		require.NoError(t, gym.AddTrainer(trainerID))
		gymRepo := new(mockGymRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := passUnitOfWork(false)

		gymRepo.On("FindByID", mock.Anything, gym.ID()).Return(gym, nil)
		gymRepo.On("Save", mock.Anything, gym).Return(nil)
		outboxRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		handler := NewRemoveTrainerFromGymHandler(gymRepo, outboxRepo, uow, &keyLocker{})
		err := handler.Handle(context.Background(), RemoveTrainerFromGymCommand{GymID: gym.ID(), TrainerID: trainerID})

		assert.EqualError(t, err, "disk full")
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
