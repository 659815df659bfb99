package commands

import (
	"context"

	"github.com/google/uuid"

	facilitiesDomain "github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// CancelSessionCommand calls off a session nobody has reserved.
type CancelSessionCommand struct {
	ActorID   uuid.UUID
	SessionID uuid.UUID
}

func (CancelSessionCommand) CommandName() string { return "cancel_session" }

// CancelSessionHandler handles the CancelSessionCommand.
type CancelSessionHandler struct {
	sessionRepo      domain.TrainingSessionRepository
	trainerRepo      domain.TrainerRepository
	roomRepo         facilitiesDomain.GymRoomRepository
	gymRepo          facilitiesDomain.GymRepository
	subscriptionRepo subscriptionDomain.SubscriptionRepository
	outboxRepo       outbox.Repository
	uow              sharedApplication.UnitOfWork
	locker           sharedApplication.Locker
}

// NewCancelSessionHandler creates a new CancelSessionHandler.
func NewCancelSessionHandler(
	sessionRepo domain.TrainingSessionRepository,
	trainerRepo domain.TrainerRepository,
	roomRepo facilitiesDomain.GymRoomRepository,
	gymRepo facilitiesDomain.GymRepository,
	subscriptionRepo subscriptionDomain.SubscriptionRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
) *CancelSessionHandler {
	return &CancelSessionHandler{
		sessionRepo:      sessionRepo,
		trainerRepo:      trainerRepo,
		roomRepo:         roomRepo,
		gymRepo:          gymRepo,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
		uow:              uow,
		locker:           locker,
	}
}

// Handle cancels the session and gives its time back to the room and the
// trainer and its slot back to the quotas.
func (h *CancelSessionHandler) Handle(ctx context.Context, cmd CancelSessionCommand) error {
	session, err := h.sessionRepo.FindByID(ctx, cmd.SessionID)
	if err != nil {
		return err
	}
	scope, err := resolveRoomScope(ctx, h.roomRepo, h.gymRepo, session.GymRoomID())
	if err != nil {
		return err
	}

	keys := append(scope.lockKeys(), sessionKey(session.ID()), trainerKey(session.TrainerID()))
	return sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			return h.cancel(txCtx, cmd, scope)
		})
	})
}

func (h *CancelSessionHandler) cancel(txCtx context.Context, cmd CancelSessionCommand, scope roomScope) error {
	session, err := h.sessionRepo.FindByID(txCtx, cmd.SessionID)
	if err != nil {
		return err
	}
	room, err := h.roomRepo.FindByID(txCtx, scope.gymRoomID)
	if err != nil {
		return err
	}
	trainer, err := h.trainerRepo.FindByID(txCtx, session.TrainerID())
	if err != nil {
		return err
	}
	subscription, err := h.subscriptionRepo.FindByID(txCtx, scope.subscriptionID)
	if err != nil {
		return err
	}

	if err := session.Cancel(); err != nil {
		return err
	}
	if err := room.ReleaseTime(session.StartDate(), session.TimeRange()); err != nil {
		return err
	}
	if err := room.RemoveTrainingSession(session.ID()); err != nil {
		return err
	}
	if err := trainer.ReleaseSession(session.ID(), session.StartDate(), session.TimeRange()); err != nil {
		return err
	}
	if err := subscription.RemoveTrainingSession(session.ID()); err != nil {
		return err
	}

	if err := h.sessionRepo.Save(txCtx, session); err != nil {
		return err
	}
	if err := h.roomRepo.Save(txCtx, room); err != nil {
		return err
	}
	if err := h.trainerRepo.Save(txCtx, trainer); err != nil {
		return err
	}
	if err := h.subscriptionRepo.Save(txCtx, subscription); err != nil {
		return err
	}
	return sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, session, room, trainer, subscription)
}
