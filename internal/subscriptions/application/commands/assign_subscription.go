package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// AssignSubscriptionCommand hands an existing subscription to an
// administrator, replacing the one they hold.
type AssignSubscriptionCommand struct {
	ActorID         uuid.UUID
	AdministratorID uuid.UUID
	SubscriptionID  uuid.UUID
}

func (AssignSubscriptionCommand) CommandName() string { return "assign_subscription" }

// AssignSubscriptionHandler handles the AssignSubscriptionCommand.
type AssignSubscriptionHandler struct {
	administratorRepo domain.AdministratorRepository
	subscriptionRepo  domain.SubscriptionRepository
	outboxRepo        outbox.Repository
	uow               sharedApplication.UnitOfWork
	locker            sharedApplication.Locker
}

// NewAssignSubscriptionHandler creates a new AssignSubscriptionHandler.
func NewAssignSubscriptionHandler(
	administratorRepo domain.AdministratorRepository,
	subscriptionRepo domain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *AssignSubscriptionHandler {
	return &AssignSubscriptionHandler{
		administratorRepo: administratorRepo,
		subscriptionRepo:  subscriptionRepo,
		outboxRepo:        outboxRepo,
		uow:               uow,
		locker:            locker,
	}
}

// Handle executes the AssignSubscriptionCommand.
func (h *AssignSubscriptionHandler) Handle(ctx context.Context, cmd AssignSubscriptionCommand) error {
	keys := []string{sharedApplication.LockKey(domain.AdministratorAggregateType, cmd.AdministratorID)}
	return sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			administrator, err := h.administratorRepo.FindByID(txCtx, cmd.AdministratorID)
			if err != nil {
				return err
			}
			if _, err := h.subscriptionRepo.FindByID(txCtx, cmd.SubscriptionID); err != nil {
				return err
			}

			if err := administrator.SetSubscription(cmd.SubscriptionID); err != nil {
				return err
			}
			if err := h.administratorRepo.Save(txCtx, administrator); err != nil {
				return err
			}
			return sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, administrator)
		})
	})
}
