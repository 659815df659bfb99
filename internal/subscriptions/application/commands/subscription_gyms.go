package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// AddGymToSubscriptionCommand counts a gym against a subscription.
type AddGymToSubscriptionCommand struct {
	ActorID        uuid.UUID
	SubscriptionID uuid.UUID
	GymID          uuid.UUID
}

func (AddGymToSubscriptionCommand) CommandName() string { return "add_gym_to_subscription" }

// RemoveGymFromSubscriptionCommand releases a gym from a subscription.
type RemoveGymFromSubscriptionCommand struct {
	ActorID        uuid.UUID
	SubscriptionID uuid.UUID
	GymID          uuid.UUID
}

func (RemoveGymFromSubscriptionCommand) CommandName() string { return "remove_gym_from_subscription" }

// DeactivateSubscriptionCommand stops a subscription from taking new members.
type DeactivateSubscriptionCommand struct {
	ActorID        uuid.UUID
	SubscriptionID uuid.UUID
}

func (DeactivateSubscriptionCommand) CommandName() string { return "deactivate_subscription" }

// subscriptionMutator runs one change against a locked subscription.
type subscriptionMutator struct {
	subscriptionRepo domain.SubscriptionRepository
	outboxRepo       outbox.Repository
	uow              sharedApplication.UnitOfWork
	locker           sharedApplication.Locker
}

func (m subscriptionMutator) mutate(ctx context.Context, actorID, subscriptionID uuid.UUID, change func(*domain.Subscription) error) error {
	keys := []string{sharedApplication.LockKey(domain.SubscriptionAggregateType, subscriptionID)}
	return sharedApplication.WithLocks(ctx, m.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, m.uow, func(txCtx context.Context) error {
			subscription, err := m.subscriptionRepo.FindByID(txCtx, subscriptionID)
			if err != nil {
				return err
			}
			if err := change(subscription); err != nil {
				return err
			}
			if err := m.subscriptionRepo.Save(txCtx, subscription); err != nil {
				return err
			}
			return sharedApplication.SaveEvents(txCtx, m.outboxRepo, actorID, subscription)
		})
	})
}

// AddGymToSubscriptionHandler handles the AddGymToSubscriptionCommand.
type AddGymToSubscriptionHandler struct {
	subscriptionMutator
}

// NewAddGymToSubscriptionHandler creates a new AddGymToSubscriptionHandler.
func NewAddGymToSubscriptionHandler(
	subscriptionRepo domain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *AddGymToSubscriptionHandler {
	return &AddGymToSubscriptionHandler{subscriptionMutator{subscriptionRepo, outboxRepo, uow, locker}}
}

// Handle executes the AddGymToSubscriptionCommand.
func (h *AddGymToSubscriptionHandler) Handle(ctx context.Context, cmd AddGymToSubscriptionCommand) error {
	return h.mutate(ctx, cmd.ActorID, cmd.SubscriptionID, func(s *domain.Subscription) error {
		return s.AddGym(cmd.GymID)
	})
}

// RemoveGymFromSubscriptionHandler handles the RemoveGymFromSubscriptionCommand.
type RemoveGymFromSubscriptionHandler struct {
	subscriptionMutator
}

// NewRemoveGymFromSubscriptionHandler creates a new RemoveGymFromSubscriptionHandler.
func NewRemoveGymFromSubscriptionHandler(
	subscriptionRepo domain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *RemoveGymFromSubscriptionHandler {
	return &RemoveGymFromSubscriptionHandler{subscriptionMutator{subscriptionRepo, outboxRepo, uow, locker}}
}

// Handle executes the RemoveGymFromSubscriptionCommand.
func (h *RemoveGymFromSubscriptionHandler) Handle(ctx context.Context, cmd RemoveGymFromSubscriptionCommand) error {
	return h.mutate(ctx, cmd.ActorID, cmd.SubscriptionID, func(s *domain.Subscription) error {
		return s.RemoveGym(cmd.GymID)
	})
}

// DeactivateSubscriptionHandler handles the DeactivateSubscriptionCommand.
type DeactivateSubscriptionHandler struct {
	subscriptionMutator
}

// NewDeactivateSubscriptionHandler creates a new DeactivateSubscriptionHandler.
func NewDeactivateSubscriptionHandler(
	subscriptionRepo domain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *DeactivateSubscriptionHandler {
	return &DeactivateSubscriptionHandler{subscriptionMutator{subscriptionRepo, outboxRepo, uow, locker}}
}

// Handle executes the DeactivateSubscriptionCommand.
func (h *DeactivateSubscriptionHandler) Handle(ctx context.Context, cmd DeactivateSubscriptionCommand) error {
	return h.mutate(ctx, cmd.ActorID, cmd.SubscriptionID, func(s *domain.Subscription) error {
		return s.Deactivate()
	})
}
