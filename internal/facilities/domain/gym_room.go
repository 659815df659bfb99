package domain

import (
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/google/uuid"
)

// GymRoom is a bookable room. It owns the schedule of its sessions and
// caps how many sessions it hosts by the subscription tier.
type GymRoom struct {
	sharedDomain.BaseAggregateRoot
	gymID              uuid.UUID
	name               string
	subscriptionType   subscriptionDomain.SubscriptionType
	schedule           schedulingDomain.Schedule
	trainingSessionIDs sharedDomain.CapacitySet
	totalSpotCount     int
}

var sessionCapacityErrors = sharedDomain.CapacityErrors{
	QuotaExceeded:   ErrDailySessionQuotaExceeded,
	AlreadyMember:   ErrSessionAlreadyInRoom,
	CollectionEmpty: ErrRoomHasNoSessions,
	NotMember:       ErrSessionNotInRoom,
}

// NewGymRoom creates a room with an empty schedule.
func NewGymRoom(id, gymID uuid.UUID, name string, subscriptionType subscriptionDomain.SubscriptionType, totalSpotCount int) (*GymRoom, error) {
	if subscriptionType.IsZero() {
		return nil, ErrSubscriptionTypeRequired
	}
	if totalSpotCount <= 0 {
		return nil, ErrInvalidSpotCount
	}
	r := &GymRoom{
		BaseAggregateRoot:  sharedDomain.NewBaseAggregateRoot(id),
		gymID:              gymID,
		name:               name,
		subscriptionType:   subscriptionType,
		schedule:           schedulingDomain.NewSchedule(),
		trainingSessionIDs: sharedDomain.NewCapacitySet(subscriptionType.MaxDailySessionCount(), sessionCapacityErrors),
		totalSpotCount:     totalSpotCount,
	}
	r.AddDomainEvent(&GymRoomCreated{
		BaseEvent:      sharedDomain.NewBaseEvent(r.ID(), GymRoomAggregateType, RoutingKeyGymRoomCreated),
		GymID:          gymID,
		Name:           name,
		TotalSpotCount: totalSpotCount,
	})
	return r, nil
}

func (r *GymRoom) GymID() uuid.UUID                                      { return r.gymID }
func (r *GymRoom) Name() string                                          { return r.name }
func (r *GymRoom) SubscriptionType() subscriptionDomain.SubscriptionType { return r.subscriptionType }
func (r *GymRoom) TotalSpotCount() int                                   { return r.totalSpotCount }
func (r *GymRoom) MaxDailySessions() int                                 { return r.subscriptionType.MaxDailySessionCount() }
func (r *GymRoom) DailySessionCount() int                                { return r.trainingSessionIDs.Count() }
func (r *GymRoom) TrainingSessionIDs() []uuid.UUID                       { return r.trainingSessionIDs.Members() }

// AvailableSpotCount is the total spot count less the sessions held here.
func (r *GymRoom) AvailableSpotCount() int {
	return r.totalSpotCount - r.trainingSessionIDs.Count()
}

// CheckSessionSize reports whether a session with size spots fits the room.
func (r *GymRoom) CheckSessionSize(size int) error {
	if size > r.totalSpotCount {
		return ErrSessionTooLarge
	}
	return nil
}

// ReserveTime books a range on the room's schedule.
func (r *GymRoom) ReserveTime(date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	return r.touched(r.schedule.Reserve(date, timeRange))
}

// ReleaseTime frees a previously booked range.
func (r *GymRoom) ReleaseTime(date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	return r.touched(r.schedule.Release(date, timeRange))
}

// IsFree reports whether the room is free for the range on date.
func (r *GymRoom) IsFree(date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) bool {
	return r.schedule.IsFree(date, timeRange)
}

// Schedule returns the room's bookings by date.
func (r *GymRoom) Schedule() []schedulingDomain.ScheduleEntry {
	return r.schedule.Entries()
}

// AddTrainingSession records a session held in the room.
func (r *GymRoom) AddTrainingSession(sessionID uuid.UUID) error {
	if err := r.trainingSessionIDs.Add(sessionID); err != nil {
		return err
	}
	r.addSessionEvent(RoutingKeyGymRoomSessionAdded, sessionID)
	return nil
}

// RemoveTrainingSession forgets a session held in the room.
func (r *GymRoom) RemoveTrainingSession(sessionID uuid.UUID) error {
	if err := r.trainingSessionIDs.Remove(sessionID); err != nil {
		return err
	}
	r.addSessionEvent(RoutingKeyGymRoomSessionRemoved, sessionID)
	return nil
}

func (r *GymRoom) addSessionEvent(routingKey string, sessionID uuid.UUID) {
	r.AddDomainEvent(&GymRoomSessionChanged{
		BaseEvent:          sharedDomain.NewBaseEvent(r.ID(), GymRoomAggregateType, routingKey),
		TrainingSessionID:  sessionID,
		SessionCount:       r.trainingSessionIDs.Count(),
		AvailableSpotCount: r.AvailableSpotCount(),
	})
}

func (r *GymRoom) touched(err error) error {
	if err == nil {
		r.Touch()
	}
	return err
}

// OverQuota names the collections holding more members than the tier allows.
func (r *GymRoom) OverQuota() []string {
	if r.trainingSessionIDs.OverQuota() {
		return []string{"training_sessions"}
	}
	return nil
}

// GymRoomSnapshot is the persisted state of a GymRoom.
type GymRoomSnapshot struct {
	GymID              uuid.UUID                           `json:"gym_id"`
	Name               string                              `json:"name"`
	SubscriptionType   subscriptionDomain.SubscriptionType `json:"subscription_type"`
	Schedule           []schedulingDomain.ScheduleEntry    `json:"schedule"`
	TrainingSessionIDs []uuid.UUID                         `json:"training_session_ids"`
	TotalSpotCount     int                                 `json:"total_spot_count"`
}

func (r *GymRoom) Snapshot() GymRoomSnapshot {
	return GymRoomSnapshot{
		GymID:              r.gymID,
		Name:               r.name,
		SubscriptionType:   r.subscriptionType,
		Schedule:           r.schedule.Entries(),
		TrainingSessionIDs: r.trainingSessionIDs.Members(),
		TotalSpotCount:     r.totalSpotCount,
	}
}

// RehydrateGymRoom recreates a room from persisted state.
func RehydrateGymRoom(base sharedDomain.BaseAggregateRoot, snap GymRoomSnapshot) (*GymRoom, error) {
	schedule, err := schedulingDomain.RestoreSchedule(snap.Schedule)
	if err != nil {
		return nil, err
	}
	return &GymRoom{
		BaseAggregateRoot:  base,
		gymID:              snap.GymID,
		name:               snap.Name,
		subscriptionType:   snap.SubscriptionType,
		schedule:           schedule,
		trainingSessionIDs: sharedDomain.RestoreCapacitySet(snap.SubscriptionType.MaxDailySessionCount(), sessionCapacityErrors, snap.TrainingSessionIDs),
		totalSpotCount:     snap.TotalSpotCount,
	}, nil
}
