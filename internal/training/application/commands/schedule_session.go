package commands

import (
	"context"

	"github.com/google/uuid"

	facilitiesDomain "github.com/Flinnker/Gym/internal/facilities/domain"
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// ScheduleSessionCommand puts a session led by a trainer into a room.
type ScheduleSessionCommand struct {
	ActorID   uuid.UUID
	GymRoomID uuid.UUID
	TrainerID uuid.UUID
	Date      schedulingDomain.Date
	TimeRange schedulingDomain.TimeRange
	// SessionSize defaults to the room's spot count when zero.
	SessionSize int
}

func (ScheduleSessionCommand) CommandName() string { return "schedule_session" }

// ScheduleSessionResult contains the result of scheduling a session.
type ScheduleSessionResult struct {
	SessionID   uuid.UUID
	SessionSize int
}

// ScheduleSessionHandler handles the ScheduleSessionCommand.
type ScheduleSessionHandler struct {
	sessionRepo      domain.TrainingSessionRepository
	trainerRepo      domain.TrainerRepository
	roomRepo         facilitiesDomain.GymRoomRepository
	gymRepo          facilitiesDomain.GymRepository
	subscriptionRepo subscriptionDomain.SubscriptionRepository
	outboxRepo       outbox.Repository
	uow              sharedApplication.UnitOfWork
	locker           sharedApplication.Locker
	clock            sharedDomain.Clock
}

// NewScheduleSessionHandler creates a new ScheduleSessionHandler.
func NewScheduleSessionHandler(
	sessionRepo domain.TrainingSessionRepository,
	trainerRepo domain.TrainerRepository,
	roomRepo facilitiesDomain.GymRoomRepository,
	gymRepo facilitiesDomain.GymRepository,
	subscriptionRepo subscriptionDomain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
	clock sharedDomain.Clock,
) *ScheduleSessionHandler {
	return &ScheduleSessionHandler{
		sessionRepo:      sessionRepo,
		trainerRepo:      trainerRepo,
		roomRepo:         roomRepo,
		gymRepo:          gymRepo,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
		uow:              uow,
		locker:           locker,
		clock:            clock,
	}
}

// Handle books the room and the trainer for the session and counts it
// against the room's and the subscription's session quotas. Any refusal
// leaves every aggregate as it was.
func (h *ScheduleSessionHandler) Handle(ctx context.Context, cmd ScheduleSessionCommand) (*ScheduleSessionResult, error) {
	scope, err := resolveRoomScope(ctx, h.roomRepo, h.gymRepo, cmd.GymRoomID)
	if err != nil {
		return nil, err
	}

	var result *ScheduleSessionResult
	keys := append(scope.lockKeys(), trainerKey(cmd.TrainerID))
	err = sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			var err error
			result, err = h.schedule(txCtx, cmd)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h *ScheduleSessionHandler) schedule(txCtx context.Context, cmd ScheduleSessionCommand) (*ScheduleSessionResult, error) {
	room, err := h.roomRepo.FindByID(txCtx, cmd.GymRoomID)
	if err != nil {
		return nil, err
	}
	gym, err := h.gymRepo.FindByID(txCtx, room.GymID())
	if err != nil {
		return nil, err
	}
	subscription, err := h.subscriptionRepo.FindByID(txCtx, gym.SubscriptionID())
	if err != nil {
		return nil, err
	}
	trainer, err := h.trainerRepo.FindByID(txCtx, cmd.TrainerID)
	if err != nil {
		return nil, err
	}

	if !gym.HasTrainer(trainer.ID()) {
		return nil, facilitiesDomain.ErrTrainerNotInGym
	}

	size := cmd.SessionSize
	if size == 0 {
		size = room.TotalSpotCount()
	}
	if err := room.CheckSessionSize(size); err != nil {
		return nil, err
	}

	session, err := domain.NewTrainingSession(uuid.Nil, room.ID(), trainer.ID(), cmd.Date, cmd.TimeRange, size)
	if err != nil {
		return nil, err
	}
	if session.HasEnded(h.clock.Now()) {
		return nil, domain.ErrSessionAlreadyEnded
	}

	if err := room.ReserveTime(cmd.Date, cmd.TimeRange); err != nil {
		return nil, err
	}
	if err := room.AddTrainingSession(session.ID()); err != nil {
		return nil, err
	}
	if err := trainer.CommitSession(session.ID(), cmd.Date, cmd.TimeRange); err != nil {
		return nil, err
	}
	if err := subscription.AddTrainingSession(session.ID()); err != nil {
		return nil, err
	}

	if err := h.sessionRepo.Save(txCtx, session); err != nil {
		return nil, err
	}
	if err := h.roomRepo.Save(txCtx, room); err != nil {
		return nil, err
	}
	if err := h.trainerRepo.Save(txCtx, trainer); err != nil {
		return nil, err
	}
	if err := h.subscriptionRepo.Save(txCtx, subscription); err != nil {
		return nil, err
	}
	if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, session, room, trainer, subscription); err != nil {
		return nil, err
	}

	return &ScheduleSessionResult{SessionID: session.ID(), SessionSize: size}, nil
}
