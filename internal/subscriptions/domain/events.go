package domain

import (
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	SubscriptionAggregateType  = "Subscription"
	AdministratorAggregateType = "Administrator"

	RoutingKeySubscriptionCreated     = "subscriptions.subscription.created"
	RoutingKeySubscriptionGymAdded    = "subscriptions.subscription.gym_added"
	RoutingKeySubscriptionGymRemoved  = "subscriptions.subscription.gym_removed"
	RoutingKeySubscriptionDeactivated = "subscriptions.subscription.deactivated"
	RoutingKeyAdministratorCreated    = "subscriptions.administrator.created"
	RoutingKeySubscriptionAssigned    = "subscriptions.administrator.subscription_assigned"

	RoutingKeySubscriptionGymRoomAdded   = "subscriptions.subscription.gym_room_added"
	RoutingKeySubscriptionGymRoomRemoved = "subscriptions.subscription.gym_room_removed"
	RoutingKeySubscriptionSessionAdded   = "subscriptions.subscription.session_added"
	RoutingKeySubscriptionSessionRemoved = "subscriptions.subscription.session_removed"
)

// SubscriptionCreated is emitted when a tier is purchased.
type SubscriptionCreated struct {
	sharedDomain.BaseEvent
	SubscriptionType string `json:"subscription_type"`
	Price            int    `json:"price"`
}

func NewSubscriptionCreated(s *Subscription) *SubscriptionCreated {
	return &SubscriptionCreated{
		BaseEvent:        sharedDomain.NewBaseEvent(s.ID(), SubscriptionAggregateType, RoutingKeySubscriptionCreated),
		SubscriptionType: s.Type().Name(),
		Price:            s.Price(),
	}
}

// SubscriptionGymChanged is emitted when a gym joins or leaves a subscription.
type SubscriptionGymChanged struct {
	sharedDomain.BaseEvent
	GymID    uuid.UUID `json:"gym_id"`
	GymCount int       `json:"gym_count"`
}

func newSubscriptionGymChanged(s *Subscription, routingKey string, gymID uuid.UUID) *SubscriptionGymChanged {
	return &SubscriptionGymChanged{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), SubscriptionAggregateType, routingKey),
		GymID:     gymID,
		GymCount:  s.GymCount(),
	}
}

// SubscriptionUsageChanged is emitted when a room or a training session is
// counted against, or released from, a subscription quota.
type SubscriptionUsageChanged struct {
	sharedDomain.BaseEvent
	MemberID    uuid.UUID `json:"member_id"`
	MemberCount int       `json:"member_count"`
}

func newSubscriptionUsageChanged(s *Subscription, routingKey string, memberID uuid.UUID, count int) *SubscriptionUsageChanged {
	return &SubscriptionUsageChanged{
		BaseEvent:   sharedDomain.NewBaseEvent(s.ID(), SubscriptionAggregateType, routingKey),
		MemberID:    memberID,
		MemberCount: count,
	}
}

// SubscriptionDeactivated is emitted when a subscription stops accepting members.
type SubscriptionDeactivated struct {
	sharedDomain.BaseEvent
}

// AdministratorCreated is emitted when an administrator account is opened.
type AdministratorCreated struct {
	sharedDomain.BaseEvent
}

// SubscriptionAssigned is emitted when an administrator switches subscription.
type SubscriptionAssigned struct {
	sharedDomain.BaseEvent
	SubscriptionID         uuid.UUID `json:"subscription_id"`
	PreviousSubscriptionID uuid.UUID `json:"previous_subscription_id,omitempty"`
}
