package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// CreateTrainerCommand registers a trainer.
type CreateTrainerCommand struct {
	ActorID uuid.UUID
	Name    string
}

func (CreateTrainerCommand) CommandName() string { return "create_trainer" }

// CreateTrainerResult contains the result of creating a trainer.
type CreateTrainerResult struct {
	TrainerID uuid.UUID
}

// CreateTrainerHandler handles the CreateTrainerCommand.
type CreateTrainerHandler struct {
	trainerRepo domain.TrainerRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
}

// NewCreateTrainerHandler creates a new CreateTrainerHandler.
func NewCreateTrainerHandler(trainerRepo domain.TrainerRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateTrainerHandler {
	return &CreateTrainerHandler{
		trainerRepo: trainerRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
	}
}

// Handle executes the CreateTrainerCommand.
func (h *CreateTrainerHandler) Handle(ctx context.Context, cmd CreateTrainerCommand) (*CreateTrainerResult, error) {
	var result *CreateTrainerResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		trainer := domain.NewTrainer(uuid.Nil, cmd.Name)

		if err := h.trainerRepo.Save(txCtx, trainer); err != nil {
			return err
		}
		if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, trainer); err != nil {
			return err
		}

		result = &CreateTrainerResult{TrainerID: trainer.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
