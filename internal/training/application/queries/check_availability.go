package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	facilitiesDomain "github.com/Flinnker/Gym/internal/facilities/domain"
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/training/domain"
)

// ResourceKind names what an availability check is about.
type ResourceKind string

const (
	ResourceGymRoom     ResourceKind = "room"
	ResourceTrainer     ResourceKind = "trainer"
	ResourceParticipant ResourceKind = "participant"
)

// ErrUnknownResource is returned for a kind CheckAvailability does not know.
var ErrUnknownResource = sharedDomain.NewError(sharedDomain.KindValidation, "availability.unknown_resource", "unknown resource kind")

// CheckAvailabilityQuery asks whether a room, trainer or participant has
// nothing booked over a range.
type CheckAvailabilityQuery struct {
	Kind      ResourceKind
	ID        uuid.UUID
	Date      schedulingDomain.Date
	TimeRange schedulingDomain.TimeRange
}

func (CheckAvailabilityQuery) QueryName() string { return "check_availability" }

// AvailabilityDTO is the answer to a CheckAvailabilityQuery.
type AvailabilityDTO struct {
	Kind ResourceKind
	ID   uuid.UUID
	Free bool
}

// CheckAvailabilityHandler handles the CheckAvailabilityQuery.
type CheckAvailabilityHandler struct {
	roomRepo        facilitiesDomain.GymRoomRepository
	trainerRepo     domain.TrainerRepository
	participantRepo domain.ParticipantRepository
}

// NewCheckAvailabilityHandler creates a new CheckAvailabilityHandler.
func NewCheckAvailabilityHandler(
	roomRepo facilitiesDomain.GymRoomRepository,
	trainerRepo domain.TrainerRepository,
	participantRepo domain.ParticipantRepository,
) *CheckAvailabilityHandler {
	return &CheckAvailabilityHandler{roomRepo: roomRepo, trainerRepo: trainerRepo, participantRepo: participantRepo}
}

// Handle executes the CheckAvailabilityQuery.
func (h *CheckAvailabilityHandler) Handle(ctx context.Context, query CheckAvailabilityQuery) (*AvailabilityDTO, error) {
	var free bool
	switch query.Kind {
	case ResourceGymRoom:
		room, err := h.roomRepo.FindByID(ctx, query.ID)
		if err != nil {
			return nil, err
		}
		free = room.IsFree(query.Date, query.TimeRange)
	case ResourceTrainer:
		trainer, err := h.trainerRepo.FindByID(ctx, query.ID)
		if err != nil {
			return nil, err
		}
		free = trainer.IsFree(query.Date, query.TimeRange)
	case ResourceParticipant:
		participant, err := h.participantRepo.FindByID(ctx, query.ID)
		if err != nil {
			return nil, err
		}
		free = participant.IsFree(query.Date, query.TimeRange)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, query.Kind)
	}
	return &AvailabilityDTO{Kind: query.Kind, ID: query.ID, Free: free}, nil
}
