package domain

import (
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

// Subscription grants an administrator a bounded number of gyms, gym rooms
// and daily training sessions.
type Subscription struct {
	sharedDomain.BaseAggregateRoot
	subscriptionType   SubscriptionType
	gymIDs             sharedDomain.CapacitySet
	gymRoomIDs         sharedDomain.CapacitySet
	trainingSessionIDs sharedDomain.CapacitySet
	active             bool
}

var (
	gymCapacityErrors = sharedDomain.CapacityErrors{
		QuotaExceeded:   ErrGymQuotaExceeded,
		AlreadyMember:   ErrGymAlreadyAdded,
		CollectionEmpty: ErrNoGyms,
		NotMember:       ErrGymNotInSubscription,
	}
	gymRoomCapacityErrors = sharedDomain.CapacityErrors{
		QuotaExceeded:   ErrGymRoomQuotaExceeded,
		AlreadyMember:   ErrGymRoomAlreadyAdded,
		CollectionEmpty: ErrNoGymRooms,
		NotMember:       ErrGymRoomNotInSubscription,
	}
	sessionCapacityErrors = sharedDomain.CapacityErrors{
		QuotaExceeded:   ErrSessionQuotaExceeded,
		AlreadyMember:   ErrSessionAlreadyAdded,
		CollectionEmpty: ErrNoSessions,
		NotMember:       ErrSessionNotInSubscription,
	}
)

// NewSubscription creates an active subscription of the given tier.
func NewSubscription(id uuid.UUID, subscriptionType SubscriptionType) (*Subscription, error) {
	if subscriptionType.IsZero() {
		return nil, ErrUnknownSubscriptionType
	}
	s := &Subscription{
		BaseAggregateRoot:  sharedDomain.NewBaseAggregateRoot(id),
		subscriptionType:   subscriptionType,
		gymIDs:             sharedDomain.NewCapacitySet(subscriptionType.MaxGymCount(), gymCapacityErrors),
		gymRoomIDs:         sharedDomain.NewCapacitySet(subscriptionType.MaxGymRoomCount(), gymRoomCapacityErrors),
		trainingSessionIDs: sharedDomain.NewCapacitySet(subscriptionType.MaxDailySessionCount(), sessionCapacityErrors),
		active:             true,
	}
	s.AddDomainEvent(NewSubscriptionCreated(s))
	return s, nil
}

func (s *Subscription) Type() SubscriptionType { return s.subscriptionType }
func (s *Subscription) Active() bool           { return s.active }
func (s *Subscription) MaxGyms() int           { return s.subscriptionType.MaxGymCount() }
func (s *Subscription) MaxRooms() int          { return s.subscriptionType.MaxGymRoomCount() }
func (s *Subscription) MaxDailySessions() int  { return s.subscriptionType.MaxDailySessionCount() }
func (s *Subscription) Price() int             { return s.subscriptionType.Price() }

func (s *Subscription) GymCount() int             { return s.gymIDs.Count() }
func (s *Subscription) GymRoomCount() int         { return s.gymRoomIDs.Count() }
func (s *Subscription) TrainingSessionCount() int { return s.trainingSessionIDs.Count() }
func (s *Subscription) GymIDs() []uuid.UUID       { return s.gymIDs.Members() }
func (s *Subscription) GymRoomIDs() []uuid.UUID   { return s.gymRoomIDs.Members() }
func (s *Subscription) TrainingSessionIDs() []uuid.UUID {
	return s.trainingSessionIDs.Members()
}

// AddGym attaches a gym to the subscription.
func (s *Subscription) AddGym(gymID uuid.UUID) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	if err := s.gymIDs.Add(gymID); err != nil {
		return err
	}
	s.AddDomainEvent(newSubscriptionGymChanged(s, RoutingKeySubscriptionGymAdded, gymID))
	return nil
}

// RemoveGym detaches a gym. Inactive subscriptions may still shed gyms.
func (s *Subscription) RemoveGym(gymID uuid.UUID) error {
	if err := s.gymIDs.Remove(gymID); err != nil {
		return err
	}
	s.AddDomainEvent(newSubscriptionGymChanged(s, RoutingKeySubscriptionGymRemoved, gymID))
	return nil
}

// AddGymRoom counts a room against the tier's room quota.
func (s *Subscription) AddGymRoom(gymRoomID uuid.UUID) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	if err := s.gymRoomIDs.Add(gymRoomID); err != nil {
		return err
	}
	s.AddDomainEvent(newSubscriptionUsageChanged(s, RoutingKeySubscriptionGymRoomAdded, gymRoomID, s.GymRoomCount()))
	return nil
}

func (s *Subscription) RemoveGymRoom(gymRoomID uuid.UUID) error {
	if err := s.gymRoomIDs.Remove(gymRoomID); err != nil {
		return err
	}
	s.AddDomainEvent(newSubscriptionUsageChanged(s, RoutingKeySubscriptionGymRoomRemoved, gymRoomID, s.GymRoomCount()))
	return nil
}

// AddTrainingSession counts a session against the tier's session quota.
func (s *Subscription) AddTrainingSession(sessionID uuid.UUID) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	if err := s.trainingSessionIDs.Add(sessionID); err != nil {
		return err
	}
	s.AddDomainEvent(newSubscriptionUsageChanged(s, RoutingKeySubscriptionSessionAdded, sessionID, s.TrainingSessionCount()))
	return nil
}

func (s *Subscription) RemoveTrainingSession(sessionID uuid.UUID) error {
	if err := s.trainingSessionIDs.Remove(sessionID); err != nil {
		return err
	}
	s.AddDomainEvent(newSubscriptionUsageChanged(s, RoutingKeySubscriptionSessionRemoved, sessionID, s.TrainingSessionCount()))
	return nil
}

// Deactivate stops the subscription from accepting new members.
func (s *Subscription) Deactivate() error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	s.active = false
	s.AddDomainEvent(&SubscriptionDeactivated{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), SubscriptionAggregateType, RoutingKeySubscriptionDeactivated),
	})
	return nil
}

// OverQuota names the collections holding more members than the tier allows.
func (s *Subscription) OverQuota() []string {
	var over []string
	if s.gymIDs.OverQuota() {
		over = append(over, "gyms")
	}
	if s.gymRoomIDs.OverQuota() {
		over = append(over, "gym_rooms")
	}
	if s.trainingSessionIDs.OverQuota() {
		over = append(over, "training_sessions")
	}
	return over
}

// SubscriptionSnapshot is the persisted state of a Subscription.
type SubscriptionSnapshot struct {
	Type               SubscriptionType `json:"type"`
	GymIDs             []uuid.UUID      `json:"gym_ids"`
	GymRoomIDs         []uuid.UUID      `json:"gym_room_ids"`
	TrainingSessionIDs []uuid.UUID      `json:"training_session_ids"`
	Active             bool             `json:"active"`
}

func (s *Subscription) Snapshot() SubscriptionSnapshot {
	return SubscriptionSnapshot{
		Type:               s.subscriptionType,
		GymIDs:             s.gymIDs.Members(),
		GymRoomIDs:         s.gymRoomIDs.Members(),
		TrainingSessionIDs: s.trainingSessionIDs.Members(),
		Active:             s.active,
	}
}

// RehydrateSubscription recreates a subscription from persisted state.
func RehydrateSubscription(base sharedDomain.BaseAggregateRoot, snap SubscriptionSnapshot) *Subscription {
	return &Subscription{
		BaseAggregateRoot:  base,
		subscriptionType:   snap.Type,
		gymIDs:             sharedDomain.RestoreCapacitySet(snap.Type.MaxGymCount(), gymCapacityErrors, snap.GymIDs),
		gymRoomIDs:         sharedDomain.RestoreCapacitySet(snap.Type.MaxGymRoomCount(), gymRoomCapacityErrors, snap.GymRoomIDs),
		trainingSessionIDs: sharedDomain.RestoreCapacitySet(snap.Type.MaxDailySessionCount(), sessionCapacityErrors, snap.TrainingSessionIDs),
		active:             snap.Active,
	}
}
