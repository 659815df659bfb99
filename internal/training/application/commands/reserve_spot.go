package commands

import (
	"context"

	"github.com/google/uuid"

	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// ReserveSpotCommand books a participant into a session.
type ReserveSpotCommand struct {
	ActorID       uuid.UUID
	SessionID     uuid.UUID
	ParticipantID uuid.UUID
}

func (ReserveSpotCommand) CommandName() string { return "reserve_spot" }

// ReserveSpotResult contains the result of reserving a spot.
type ReserveSpotResult struct {
	AvailableSpots int
}

// ReserveSpotHandler handles the ReserveSpotCommand.
type ReserveSpotHandler struct {
	sessionRepo     domain.TrainingSessionRepository
	participantRepo domain.ParticipantRepository
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
	locker          sharedApplication.Locker
	clock           sharedDomain.Clock
}

// NewReserveSpotHandler creates a new ReserveSpotHandler.
func NewReserveSpotHandler(
	sessionRepo domain.TrainingSessionRepository,
	participantRepo domain.ParticipantRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	locker sharedApplication.Locker,
	clock sharedDomain.Clock,
) *ReserveSpotHandler {
	return &ReserveSpotHandler{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		outboxRepo:      outboxRepo,
		uow:             uow,
		locker:          locker,
		clock:           clock,
	}
}

// Handle takes a spot in the session and puts it on the participant's
// schedule. A participant already booked elsewhere at that time is refused.
func (h *ReserveSpotHandler) Handle(ctx context.Context, cmd ReserveSpotCommand) (*ReserveSpotResult, error) {
	var result *ReserveSpotResult

	keys := []string{sessionKey(cmd.SessionID), participantKey(cmd.ParticipantID)}
	err := sharedApplication.WithLocks(ctx, h.locker, keys, func(ctx context.Context) error {
		return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
			session, err := h.sessionRepo.FindByID(txCtx, cmd.SessionID)
			if err != nil {
				return err
			}
			participant, err := h.participantRepo.FindByID(txCtx, cmd.ParticipantID)
			if err != nil {
				return err
			}

			if session.HasEnded(h.clock.Now()) {
				return domain.ErrSessionAlreadyEnded
			}
			if err := session.ReserveSpot(participant.ID()); err != nil {
				return err
			}
			if err := participant.CommitSession(session.ID(), session.StartDate(), session.TimeRange()); err != nil {
				return err
			}

			if err := h.sessionRepo.Save(txCtx, session); err != nil {
				return err
			}
			if err := h.participantRepo.Save(txCtx, participant); err != nil {
				return err
			}
			if err := sharedApplication.SaveEvents(txCtx, h.outboxRepo, cmd.ActorID, session, participant); err != nil {
				return err
			}

			result = &ReserveSpotResult{AvailableSpots: session.AvailableSpots()}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
