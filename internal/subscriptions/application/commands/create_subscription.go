package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// CreateSubscriptionCommand starts a subscription on a tier, optionally
// assigning it to an administrator right away.
type CreateSubscriptionCommand struct {
	ActorID         uuid.UUID
	Type            string
	AdministratorID uuid.UUID
}

func (CreateSubscriptionCommand) CommandName() string { return "create_subscription" }

// CreateSubscriptionResult contains the result of creating a subscription.
type CreateSubscriptionResult struct {
	SubscriptionID uuid.UUID
}

// CreateSubscriptionHandler handles the CreateSubscriptionCommand.
type CreateSubscriptionHandler struct {
	subscriptionRepo  domain.SubscriptionRepository
	administratorRepo domain.AdministratorRepository
	outboxRepo        outbox.Repository
	uow               sharedApplication.UnitOfWork
	locker            sharedApplication.Locker
}

// NewCreateSubscriptionHandler creates a new CreateSubscriptionHandler.
func NewCreateSubscriptionHandler(
	subscriptionRepo domain.SubscriptionRepository,
	administratorRepo domain.AdministratorRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *CreateSubscriptionHandler {
	return &CreateSubscriptionHandler{
		subscriptionRepo:  subscriptionRepo,
		administratorRepo: administratorRepo,
		outboxRepo:        outboxRepo,
		uow:               uow,
		locker:            locker,
	}
}

// Handle executes the CreateSubscriptionCommand.
func (h *CreateSubscriptionHandler) Handle(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	subscriptionType, err := domain.SubscriptionTypeByName(cmd.Type)
	if err != nil {
		return nil, err
	}

	var keys []string
	if cmd.AdministratorID != uuid.Nil {
		keys = append(keys, sharedApplication.LockKey(domain.AdministratorAggregateType, cmd.AdministratorID))
	}

	var result *CreateSubscriptionResult
	err = sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			subscription, err := domain.NewSubscription(uuid.Nil, subscriptionType)
			if err != nil {
				return err
			}
			aggregates := []sharedDomain.AggregateRoot{subscription}

			if cmd.AdministratorID != uuid.Nil {
				administrator, err := h.administratorRepo.FindByID(txCtx, cmd.AdministratorID)
				if err != nil {
					return err
				}
				if err := administrator.SetSubscription(subscription.ID()); err != nil {
					return err
				}
				if err := h.administratorRepo.Save(txCtx, administrator); err != nil {
					return err
				}
				aggregates = append(aggregates, administrator)
			}

			if err := h.subscriptionRepo.Save(txCtx, subscription); err != nil {
				return err
			}
			if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, aggregates...); err != nil {
				return err
			}

			result = &CreateSubscriptionResult{SubscriptionID: subscription.ID()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
