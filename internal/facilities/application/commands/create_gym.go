package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// CreateGymCommand opens a gym under a subscription.
type CreateGymCommand struct {
	ActorID        uuid.UUID
	SubscriptionID uuid.UUID
	Name           string
}

func (CreateGymCommand) CommandName() string { return "create_gym" }

// CreateGymResult contains the result of creating a gym.
type CreateGymResult struct {
	GymID uuid.UUID
}

// CreateGymHandler handles the CreateGymCommand.
type CreateGymHandler struct {
	gymRepo          domain.GymRepository
	subscriptionRepo subscriptionDomain.SubscriptionRepository
	outboxRepo       outbox.Repository
	uow              sharedApplication.UnitOfWork
	locker           sharedApplication.Locker
}

// NewCreateGymHandler creates a new CreateGymHandler.
func NewCreateGymHandler(
	gymRepo domain.GymRepository,
	subscriptionRepo subscriptionDomain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *CreateGymHandler {
	return &CreateGymHandler{
		gymRepo:          gymRepo,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
		uow:              uow,
		locker:           locker,
	}
}

// Handle creates the gym and counts it against the subscription's gym quota.
func (h *CreateGymHandler) Handle(ctx context.Context, cmd CreateGymCommand) (*CreateGymResult, error) {
	var result *CreateGymResult

	keys := []string{sharedApplication.LockKey(subscriptionDomain.SubscriptionAggregateType, cmd.SubscriptionID)}
	err := sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			subscription, err := h.subscriptionRepo.FindByID(txCtx, cmd.SubscriptionID)
			if err != nil {
				return err
			}

			gym, err := domain.NewGym(uuid.Nil, subscription.ID(), cmd.Name, subscription.Type())
			if err != nil {
				return err
			}
			if err := subscription.AddGym(gym.ID()); err != nil {
				return err
			}

			if err := h.gymRepo.Save(txCtx, gym); err != nil {
				return err
			}
			if err := h.subscriptionRepo.Save(txCtx, subscription); err != nil {
				return err
			}
			if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, gym, subscription); err != nil {
				return err
			}

			result = &CreateGymResult{GymID: gym.ID()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
