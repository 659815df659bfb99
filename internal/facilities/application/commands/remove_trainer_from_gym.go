package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
)

// RemoveTrainerFromGymCommand takes a trainer off a gym's staff.
type RemoveTrainerFromGymCommand struct {
	ActorID   uuid.UUID
	GymID     uuid.UUID
	TrainerID uuid.UUID
}

func (RemoveTrainerFromGymCommand) CommandName() string { return "remove_trainer_from_gym" }

// RemoveTrainerFromGymHandler handles the RemoveTrainerFromGymCommand.
type RemoveTrainerFromGymHandler struct {
	gymRepo    domain.GymRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	locker     sharedApplication.Locker
}

// NewRemoveTrainerFromGymHandler creates a new RemoveTrainerFromGymHandler.
func NewRemoveTrainerFromGymHandler(
	gymRepo domain.GymRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *RemoveTrainerFromGymHandler {
	return &RemoveTrainerFromGymHandler{
		gymRepo:    gymRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		locker:     locker,
	}
}

// Handle executes the RemoveTrainerFromGymCommand. Sessions the trainer
// already leads are left on the schedule.
func (h *RemoveTrainerFromGymHandler) Handle(ctx context.Context, cmd RemoveTrainerFromGymCommand) error {
	keys := []string{sharedApplication.LockKey(domain.GymAggregateType, cmd.GymID)}
	return sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			gym, err := h.gymRepo.FindByID(txCtx, cmd.GymID)
			if err != nil {
				return err
			}
			if err := gym.RemoveTrainer(cmd.TrainerID); err != nil {
				return err
			}
			if err := h.gymRepo.Save(txCtx, gym); err != nil {
				return err
			}
			return sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, gym)
		})
	})
}
