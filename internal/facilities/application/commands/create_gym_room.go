package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// CreateGymRoomCommand adds a room to a gym.
type CreateGymRoomCommand struct {
	ActorID        uuid.UUID
	GymID          uuid.UUID
	Name           string
	TotalSpotCount int
}

func (CreateGymRoomCommand) CommandName() string { return "create_gym_room" }

// CreateGymRoomResult contains the result of creating a gym room.
type CreateGymRoomResult struct {
	GymRoomID uuid.UUID
}

// CreateGymRoomHandler handles the CreateGymRoomCommand.
type CreateGymRoomHandler struct {
	gymRepo          domain.GymRepository
	roomRepo         domain.GymRoomRepository
	subscriptionRepo subscriptionDomain.SubscriptionRepository
	outboxRepo       outbox.Repository
	uow              sharedApplication.UnitOfWork
	locker           sharedApplication.Locker
}

// NewCreateGymRoomHandler creates a new CreateGymRoomHandler.
func NewCreateGymRoomHandler(
	gymRepo domain.GymRepository,
	roomRepo domain.GymRoomRepository,
	subscriptionRepo subscriptionDomain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *CreateGymRoomHandler {
	return &CreateGymRoomHandler{
		gymRepo:          gymRepo,
		roomRepo:         roomRepo,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
		uow:              uow,
		locker:           locker,
	}
}

// Handle creates the room and counts it against both the gym's and the
// subscription's room quota. Either quota refusing leaves nothing behind.
func (h *CreateGymRoomHandler) Handle(ctx context.Context, cmd CreateGymRoomCommand) (*CreateGymRoomResult, error) {
	var result *CreateGymRoomResult

	err := lockGymAndSubscription(ctx, h.locker, h.gymRepo, cmd.GymID, nil, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			gym, err := h.gymRepo.FindByID(txCtx, cmd.GymID)
			if err != nil {
				return err
			}
			subscription, err := h.subscriptionRepo.FindByID(txCtx, gym.SubscriptionID())
			if err != nil {
				return err
			}

			room, err := domain.NewGymRoom(uuid.Nil, gym.ID(), cmd.Name, gym.SubscriptionType(), cmd.TotalSpotCount)
			if err != nil {
				return err
			}
			if err := gym.AddGymRoom(room.ID()); err != nil {
				return err
			}
			if err := subscription.AddGymRoom(room.ID()); err != nil {
				return err
			}

			if err := h.roomRepo.Save(txCtx, room); err != nil {
				return err
			}
			if err := h.gymRepo.Save(txCtx, gym); err != nil {
				return err
			}
			if err := h.subscriptionRepo.Save(txCtx, subscription); err != nil {
				return err
			}
			if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, room, gym, subscription); err != nil {
				return err
			}

			result = &CreateGymRoomResult{GymRoomID: room.ID()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
