package queries

import (
	"context"
	"sort"

	"github.com/google/uuid"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// ListRoomSessionsQuery asks for the sessions held in a room.
type ListRoomSessionsQuery struct {
	GymRoomID       uuid.UUID
	IncludeCanceled bool
}

func (ListRoomSessionsQuery) QueryName() string { return "list_room_sessions" }

// ListRoomSessionsHandler handles the ListRoomSessionsQuery.
type ListRoomSessionsHandler struct {
	sessionRepo domain.TrainingSessionRepository
	clock       sharedDomain.Clock
}

// NewListRoomSessionsHandler creates a new ListRoomSessionsHandler.
func NewListRoomSessionsHandler(sessionRepo domain.TrainingSessionRepository, clock sharedDomain.Clock) *ListRoomSessionsHandler {
	return &ListRoomSessionsHandler{sessionRepo: sessionRepo, clock: clock}
}

// Handle returns the room's sessions in start order.
func (h *ListRoomSessionsHandler) Handle(ctx context.Context, query ListRoomSessionsQuery) ([]TrainingSessionDTO, error) {
	sessions, err := h.sessionRepo.FindByGymRoomID(ctx, query.GymRoomID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartsAt().Before(sessions[j].StartsAt())
	})

	now := h.clock.Now()
	dtos := make([]TrainingSessionDTO, 0, len(sessions))
	for _, session := range sessions {
		if session.Canceled() && !query.IncludeCanceled {
			continue
		}
		dtos = append(dtos, toSessionDTO(session, now))
	}
	return dtos, nil
}
