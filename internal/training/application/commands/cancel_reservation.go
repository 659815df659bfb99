package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// CancelReservationCommand gives a participant's spot back.
type CancelReservationCommand struct {
	ActorID       uuid.UUID
	SessionID     uuid.UUID
	ParticipantID uuid.UUID
}

func (CancelReservationCommand) CommandName() string { return "cancel_reservation" }

// CancelReservationHandler handles the CancelReservationCommand.
type CancelReservationHandler struct {
	sessionRepo     domain.TrainingSessionRepository
	participantRepo domain.ParticipantRepository
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
	locker          sharedApplication.Locker
	clock           sharedDomain.Clock
}

// NewCancelReservationHandler creates a new CancelReservationHandler.
func NewCancelReservationHandler(
	sessionRepo domain.TrainingSessionRepository,
	participantRepo domain.ParticipantRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
	clock sharedDomain.Clock,
) *CancelReservationHandler {
	return &CancelReservationHandler{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		outboxRepo:      outboxRepo,
		uow:             uow,
		locker:          locker,
		clock:           clock,
	}
}

// Handle cancels the reservation as of the clock's current time.
func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) error {
	keys := []string{sessionKey(cmd.SessionID), participantKey(cmd.ParticipantID)}
	return sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			session, err := h.sessionRepo.FindByID(txCtx, cmd.SessionID)
			if err != nil {
				return err
			}
			participant, err := h.participantRepo.FindByID(txCtx, cmd.ParticipantID)
			if err != nil {
				return err
			}

			if err := session.CancelReservation(participant.ID(), h.clock.Now()); err != nil {
				return err
			}
			if err := participant.ReleaseSession(session.ID(), session.StartDate(), session.TimeRange()); err != nil {
				return err
			}

			if err := h.sessionRepo.Save(txCtx, session); err != nil {
				return err
			}
			if err := h.participantRepo.Save(txCtx, participant); err != nil {
				return err
			}
			return sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, session, participant)
		})
	})
}
