package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	trainingDomain "github.com/Flinnker/Gym/internal/training/domain"
)

// AddTrainerToGymCommand lets a trainer lead sessions in a gym.
type AddTrainerToGymCommand struct {
	ActorID   uuid.UUID
	GymID     uuid.UUID
	TrainerID uuid.UUID
}

func (AddTrainerToGymCommand) CommandName() string { return "add_trainer_to_gym" }

// AddTrainerToGymHandler handles the AddTrainerToGymCommand.
type AddTrainerToGymHandler struct {
	gymRepo     domain.GymRepository
	trainerRepo trainingDomain.TrainerRepository
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	locker      sharedApplication.Locker
}

// NewAddTrainerToGymHandler creates a new AddTrainerToGymHandler.
func NewAddTrainerToGymHandler(
	gymRepo domain.GymRepository,
	trainerRepo trainingDomain.TrainerRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *AddTrainerToGymHandler {
	return &AddTrainerToGymHandler{
		gymRepo:     gymRepo,
		trainerRepo: trainerRepo,
		outboxRepo:  outboxRepo,
		uow:         uow,
		locker:      locker,
	}
}

// Handle executes the AddTrainerToGymCommand.
func (h *AddTrainerToGymHandler) Handle(ctx context.Context, cmd AddTrainerToGymCommand) error {
	keys := []string{sharedApplication.LockKey(domain.GymAggregateType, cmd.GymID)}
	return sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			gym, err := h.gymRepo.FindByID(txCtx, cmd.GymID)
			if err != nil {
				return err
			}
			// The trainer must exist before a gym can employ them.
			if _, err := h.trainerRepo.FindByID(txCtx, cmd.TrainerID); err != nil {
				return err
			}

			if err := gym.AddTrainer(cmd.TrainerID); err != nil {
				return err
			}
			if err := h.gymRepo.Save(txCtx, gym); err != nil {
				return err
			}
			return sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, gym)
		})
	})
}
