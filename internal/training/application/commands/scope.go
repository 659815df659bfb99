package commands

import (
	"context"

	"github.com/google/uuid"

	facilitiesDomain "github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// roomScope identifies the gym and subscription a room's sessions count
// against. Neither link ever changes, so it may be resolved before locking.
type roomScope struct {
	gymRoomID      uuid.UUID
	gymID          uuid.UUID
	subscriptionID uuid.UUID
}

func resolveRoomScope(
	ctx context.Context,
	roomRepo facilitiesDomain.GymRoomRepository,
	gymRepo facilitiesDomain.GymRepository,
	gymRoomID uuid.UUID,
) (roomScope, error) {
	room, err := roomRepo.FindByID(ctx, gymRoomID)
	if err != nil {
		return roomScope{}, err
	}
	gym, err := gymRepo.FindByID(ctx, room.GymID())
	if err != nil {
		return roomScope{}, err
	}
	return roomScope{gymRoomID: room.ID(), gymID: gym.ID(), subscriptionID: gym.SubscriptionID()}, nil
}

func (s roomScope) lockKeys() []string {
	return []string{
		sharedApplication.LockKey(facilitiesDomain.GymRoomAggregateType, s.gymRoomID),
		sharedApplication.LockKey(facilitiesDomain.GymAggregateType, s.gymID),
		sharedApplication.LockKey(subscriptionDomain.SubscriptionAggregateType, s.subscriptionID),
	}
}

func sessionKey(id uuid.UUID) string {
	return sharedApplication.LockKey(domain.TrainingSessionAggregateType, id)
}

func trainerKey(id uuid.UUID) string {
	return sharedApplication.LockKey(domain.TrainerAggregateType, id)
}

func participantKey(id uuid.UUID) string {
	return sharedApplication.LockKey(domain.ParticipantAggregateType, id)
}
