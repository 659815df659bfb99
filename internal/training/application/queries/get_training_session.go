package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// GetTrainingSessionQuery asks for a session and how many spots are left.
type GetTrainingSessionQuery struct {
	SessionID uuid.UUID
}

func (GetTrainingSessionQuery) QueryName() string { return "get_training_session" }

// TrainingSessionDTO is a read model of a training session.
type TrainingSessionDTO struct {
	ID             uuid.UUID
	GymRoomID      uuid.UUID
	TrainerID      uuid.UUID
	Date           string
	Start          string
	End            string
	SessionSize    int
	Reserved       int
	AvailableSpots int
	ParticipantIDs []uuid.UUID
	Canceled       bool
	Ended          bool
}

// GetTrainingSessionHandler handles the GetTrainingSessionQuery.
type GetTrainingSessionHandler struct {
	sessionRepo domain.TrainingSessionRepository
	clock       sharedDomain.Clock
}

// NewGetTrainingSessionHandler creates a new GetTrainingSessionHandler.
func NewGetTrainingSessionHandler(sessionRepo domain.TrainingSessionRepository, clock sharedDomain.Clock) *GetTrainingSessionHandler {
	return &GetTrainingSessionHandler{sessionRepo: sessionRepo, clock: clock}
}

// Handle executes the GetTrainingSessionQuery.
func (h *GetTrainingSessionHandler) Handle(ctx context.Context, query GetTrainingSessionQuery) (*TrainingSessionDTO, error) {
	session, err := h.sessionRepo.FindByID(ctx, query.SessionID)
	if err != nil {
		return nil, err
	}
	dto := toSessionDTO(session, h.clock.Now())
	return &dto, nil
}

func toSessionDTO(session *domain.TrainingSession, now time.Time) TrainingSessionDTO {
	return TrainingSessionDTO{
		ID:             session.ID(),
		GymRoomID:      session.GymRoomID(),
		TrainerID:      session.TrainerID(),
		Date:           session.StartDate().String(),
		Start:          session.TimeRange().Start().String(),
		End:            session.TimeRange().End().String(),
		SessionSize:    session.SessionSize(),
		Reserved:       session.ReservationCount(),
		AvailableSpots: session.AvailableSpots(),
		ParticipantIDs: session.ParticipantIDs(),
		Canceled:       session.Canceled(),
		Ended:          session.HasEnded(now),
	}
}
