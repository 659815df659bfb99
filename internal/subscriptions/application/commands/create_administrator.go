package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// CreateAdministratorCommand registers an administrator without a
// subscription.
type CreateAdministratorCommand struct {
	ActorID uuid.UUID
}

func (CreateAdministratorCommand) CommandName() string { return "create_administrator" }

// CreateAdministratorResult contains the result of creating an administrator.
type CreateAdministratorResult struct {
	AdministratorID uuid.UUID
}

// CreateAdministratorHandler handles the CreateAdministratorCommand.
type CreateAdministratorHandler struct {
	administratorRepo domain.AdministratorRepository
	outboxRepo        outbox.Repository
	uow               sharedApplication.UnitOfWork
}

// NewCreateAdministratorHandler creates a new CreateAdministratorHandler.
func NewCreateAdministratorHandler(
	administratorRepo domain.AdministratorRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CreateAdministratorHandler {
	return &CreateAdministratorHandler{
		administratorRepo: administratorRepo,
		outboxRepo:        outboxRepo,
		uow:               uow,
	}
}

// Handle executes the CreateAdministratorCommand.
func (h *CreateAdministratorHandler) Handle(ctx context.Context, cmd CreateAdministratorCommand) (*CreateAdministratorResult, error) {
	var result *CreateAdministratorResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		administrator := domain.NewAdministrator(uuid.Nil)

		if err := h.administratorRepo.Save(txCtx, administrator); err != nil {
			return err
		}
		if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, administrator); err != nil {
			return err
		}

		result = &CreateAdministratorResult{AdministratorID: administrator.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
