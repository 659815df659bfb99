package domain

import (
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	GymAggregateType     = "Gym"
	GymRoomAggregateType = "GymRoom"

	RoutingKeyGymCreated            = "facilities.gym.created"
	RoutingKeyGymTrainerAdded       = "facilities.gym.trainer_added"
	RoutingKeyGymTrainerRemoved     = "facilities.gym.trainer_removed"
	RoutingKeyGymRoomAdded          = "facilities.gym.room_added"
	RoutingKeyGymRoomRemoved        = "facilities.gym.room_removed"
	RoutingKeyGymRoomCreated        = "facilities.room.created"
	RoutingKeyGymRoomSessionAdded   = "facilities.room.session_added"
	RoutingKeyGymRoomSessionRemoved = "facilities.room.session_removed"
)

// GymCreated is emitted when a gym is opened under a subscription.
type GymCreated struct {
	sharedDomain.BaseEvent
	SubscriptionID   uuid.UUID `json:"subscription_id"`
	SubscriptionType string    `json:"subscription_type"`
	Name             string    `json:"name"`
}

// GymMembershipChanged is emitted when a trainer or room joins or leaves a gym.
type GymMembershipChanged struct {
	sharedDomain.BaseEvent
	MemberID    uuid.UUID `json:"member_id"`
	MemberCount int       `json:"member_count"`
}

func newGymMembershipChanged(gymID uuid.UUID, routingKey string, memberID uuid.UUID, count int) *GymMembershipChanged {
	return &GymMembershipChanged{
		BaseEvent:   sharedDomain.NewBaseEvent(gymID, GymAggregateType, routingKey),
		MemberID:    memberID,
		MemberCount: count,
	}
}

// GymRoomCreated is emitted when a room is set up.
type GymRoomCreated struct {
	sharedDomain.BaseEvent
	GymID          uuid.UUID `json:"gym_id"`
	Name           string    `json:"name"`
	TotalSpotCount int       `json:"total_spot_count"`
}

// GymRoomSessionChanged is emitted when a session is booked into or out of a room.
type GymRoomSessionChanged struct {
	sharedDomain.BaseEvent
	TrainingSessionID  uuid.UUID `json:"training_session_id"`
	SessionCount       int       `json:"session_count"`
	AvailableSpotCount int       `json:"available_spot_count"`
}
