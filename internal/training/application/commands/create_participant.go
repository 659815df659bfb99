package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// CreateParticipantCommand registers a participant.
type CreateParticipantCommand struct {
	ActorID uuid.UUID
	Name    string
}

func (CreateParticipantCommand) CommandName() string { return "create_participant" }

// CreateParticipantResult contains the result of creating a participant.
type CreateParticipantResult struct {
	ParticipantID uuid.UUID
}

// CreateParticipantHandler handles the CreateParticipantCommand.
type CreateParticipantHandler struct {
	participantRepo domain.ParticipantRepository
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
}

// NewCreateParticipantHandler creates a new CreateParticipantHandler.
func NewCreateParticipantHandler(participantRepo domain.ParticipantRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateParticipantHandler {
	return &CreateParticipantHandler{
		participantRepo: participantRepo,
		outboxRepo:      outboxRepo,
		uow:             uow,
	}
}

// Handle executes the CreateParticipantCommand.
func (h *CreateParticipantHandler) Handle(ctx context.Context, cmd CreateParticipantCommand) (*CreateParticipantResult, error) {
	var result *CreateParticipantResult

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		participant := domain.NewParticipant(uuid.Nil, cmd.Name)

		if err := h.participantRepo.Save(txCtx, participant); err != nil {
			return err
		}
		if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, participant); err != nil {
			return err
		}

		result = &CreateParticipantResult{ParticipantID: participant.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
