package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// RemoveGymRoomCommand closes a room that holds no sessions.
type RemoveGymRoomCommand struct {
	ActorID   uuid.UUID
	GymID     uuid.UUID
	GymRoomID uuid.UUID
}

func (RemoveGymRoomCommand) CommandName() string { return "remove_gym_room" }

// RemoveGymRoomHandler handles the RemoveGymRoomCommand.
type RemoveGymRoomHandler struct {
	gymRepo          domain.GymRepository
	roomRepo         domain.GymRoomRepository
	subscriptionRepo subscriptionDomain.SubscriptionRepository
	outboxRepo       outbox.Repository
	uow              sharedApplication.UnitOfWork
	locker           sharedApplication.Locker
}

// NewRemoveGymRoomHandler creates a new RemoveGymRoomHandler.
func NewRemoveGymRoomHandler(
	gymRepo domain.GymRepository,
	roomRepo domain.GymRoomRepository,
	subscriptionRepo subscriptionDomain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *RemoveGymRoomHandler {
	return &RemoveGymRoomHandler{
		gymRepo:          gymRepo,
		roomRepo:         roomRepo,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
		uow:              uow,
		locker:           locker,
	}
}

// Handle detaches the room from its gym and subscription and deletes it.
func (h *RemoveGymRoomHandler) Handle(ctx context.Context, cmd RemoveGymRoomCommand) error {
	roomKey := sharedApplication.LockKey(domain.GymRoomAggregateType, cmd.GymRoomID)
	return lockGymAndSubscription(ctx, h.locker, h.gymRepo, cmd.GymID, []string{roomKey}, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			return h.remove(txCtx, cmd)
		})
	})
}

func (h *RemoveGymRoomHandler) remove(txCtx context.Context, cmd RemoveGymRoomCommand) error {
	gym, err := h.gymRepo.FindByID(txCtx, cmd.GymID)
	if err != nil {
		return err
	}
	room, err := h.roomRepo.FindByID(txCtx, cmd.GymRoomID)
	if err != nil {
		return err
	}
	if room.GymID() != gym.ID() {
		return domain.ErrGymRoomNotInGym
	}
	if room.DailySessionCount() > 0 {
		return domain.ErrRoomHasSessions
	}
	subscription, err := h.subscriptionRepo.FindByID(txCtx, gym.SubscriptionID())
	if err != nil {
		return err
	}

	if err := gym.RemoveGymRoom(room.ID()); err != nil {
		return err
	}
	if err := subscription.RemoveGymRoom(room.ID()); err != nil {
		return err
	}

	if err := h.roomRepo.Delete(txCtx, room.ID()); err != nil {
		return err
	}
	if err := h.gymRepo.Save(txCtx, gym); err != nil {
		return err
	}
	if err := h.subscriptionRepo.Save(txCtx, subscription); err != nil {
		return err
	}
	return sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, gym, subscription)
}
