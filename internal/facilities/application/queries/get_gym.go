package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
)

// GetGymQuery asks for a gym with its rooms.
type GetGymQuery struct {
	GymID uuid.UUID
}

func (GetGymQuery) QueryName() string { return "get_gym" }

// GymRoomDTO is a read model of a gym room.
type GymRoomDTO struct {
	ID                 uuid.UUID
	Name               string
	TotalSpotCount     int
	AvailableSpotCount int
	SessionCount       int
	// MaxDailySessions is -1 when the tier sets no limit.
	MaxDailySessions int
}

// GymDTO is a read model of a gym.
type GymDTO struct {
	ID               uuid.UUID
	Name             string
	SubscriptionID   uuid.UUID
	SubscriptionType string
	TrainerIDs       []uuid.UUID
	Rooms            []GymRoomDTO
	// MaxRoomCount is -1 when the tier sets no limit.
	MaxRoomCount int
}

// GetGymHandler handles the GetGymQuery.
type GetGymHandler struct {
	gymRepo  domain.GymRepository
	roomRepo domain.GymRoomRepository
}

// NewGetGymHandler creates a new GetGymHandler.
func NewGetGymHandler(gymRepo domain.GymRepository, roomRepo domain.GymRoomRepository) *GetGymHandler {
	return &GetGymHandler{gymRepo: gymRepo, roomRepo: roomRepo}
}

// Handle executes the GetGymQuery.
func (h *GetGymHandler) Handle(ctx context.Context, query GetGymQuery) (*GymDTO, error) {
	gym, err := h.gymRepo.FindByID(ctx, query.GymID)
	if err != nil {
		return nil, err
	}

	rooms, err := h.roomRepo.FindByGymID(ctx, gym.ID())
	if err != nil {
		return nil, err
	}

	dto := &GymDTO{
		ID:               gym.ID(),
		Name:             gym.Name(),
		SubscriptionID:   gym.SubscriptionID(),
		SubscriptionType: gym.SubscriptionType().Name(),
		TrainerIDs:       gym.TrainerIDs(),
		Rooms:            make([]GymRoomDTO, 0, len(rooms)),
		MaxRoomCount:     limit(gym.MaxRoomCount()),
	}
	for _, room := range rooms {
		dto.Rooms = append(dto.Rooms, GymRoomDTO{
			ID:                 room.ID(),
			Name:               room.Name(),
			TotalSpotCount:     room.TotalSpotCount(),
			AvailableSpotCount: room.AvailableSpotCount(),
			SessionCount:       room.DailySessionCount(),
			MaxDailySessions:   limit(room.MaxDailySessions()),
		})
	}
	return dto, nil
}

func limit(quota int) int {
	if quota == sharedDomain.Unlimited {
		return -1
	}
	return quota
}
