package domain

import (
	"time"

	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

// Reservation is a participant's spot in a session. It only exists inside
// its TrainingSession.
type Reservation struct {
	sharedDomain.BaseEntity
	participantID uuid.UUID
}

func (r Reservation) ParticipantID() uuid.UUID { return r.participantID }

// TrainingSession is a time-boxed class in a gym room with a fixed number
// of spots.
type TrainingSession struct {
	sharedDomain.BaseAggregateRoot
	gymRoomID    uuid.UUID
	trainerID    uuid.UUID
	startDate    schedulingDomain.Date
	timeRange    schedulingDomain.TimeRange
	sessionSize  int
	participants sharedDomain.CapacitySet
	reservations map[uuid.UUID]Reservation
	canceled     bool
}

var reservationErrors = sharedDomain.CapacityErrors{
	QuotaExceeded:   ErrNoAvailableSpot,
	AlreadyMember:   ErrAlreadyReserved,
	CollectionEmpty: ErrNoSuchReservation,
	NotMember:       ErrNoSuchReservation,
}

// NewTrainingSession creates a session with no reservations.
func NewTrainingSession(
	id, gymRoomID, trainerID uuid.UUID,
	startDate schedulingDomain.Date,
	timeRange schedulingDomain.TimeRange,
	sessionSize int,
) (*TrainingSession, error) {
	if sessionSize <= 0 {
		return nil, ErrInvalidSessionSize
	}
	if startDate.IsZero() {
		return nil, ErrStartDateRequired
	}
	if timeRange.IsZero() {
		return nil, ErrTimeRangeRequired
	}
	s := &TrainingSession{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(id),
		gymRoomID:         gymRoomID,
		trainerID:         trainerID,
		startDate:         startDate,
		timeRange:         timeRange,
		sessionSize:       sessionSize,
		participants:      sharedDomain.NewCapacitySet(sessionSize, reservationErrors),
		reservations:      make(map[uuid.UUID]Reservation),
	}
	s.AddDomainEvent(&SessionScheduled{
		BaseEvent:   sharedDomain.NewBaseEvent(s.ID(), TrainingSessionAggregateType, RoutingKeySessionScheduled),
		GymRoomID:   gymRoomID,
		TrainerID:   trainerID,
		StartDate:   startDate,
		TimeRange:   timeRange,
		SessionSize: sessionSize,
	})
	return s, nil
}

func (s *TrainingSession) GymRoomID() uuid.UUID                  { return s.gymRoomID }
func (s *TrainingSession) TrainerID() uuid.UUID                  { return s.trainerID }
func (s *TrainingSession) StartDate() schedulingDomain.Date      { return s.startDate }
func (s *TrainingSession) TimeRange() schedulingDomain.TimeRange { return s.timeRange }
func (s *TrainingSession) SessionSize() int                      { return s.sessionSize }
func (s *TrainingSession) ReservationCount() int                 { return s.participants.Count() }
func (s *TrainingSession) AvailableSpots() int                   { return s.participants.Remaining() }
func (s *TrainingSession) Canceled() bool                        { return s.canceled }

// HasReservation reports whether the participant holds a spot.
func (s *TrainingSession) HasReservation(participantID uuid.UUID) bool {
	return s.participants.Contains(participantID)
}

// Reservations returns the reservations in booking order.
func (s *TrainingSession) Reservations() []Reservation {
	ids := s.participants.Members()
	out := make([]Reservation, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.reservations[id])
	}
	return out
}

// ParticipantIDs returns the participants holding a spot, in booking order.
func (s *TrainingSession) ParticipantIDs() []uuid.UUID {
	return s.participants.Members()
}

// StartsAt returns the instant the session begins.
func (s *TrainingSession) StartsAt() time.Time {
	return s.startDate.At(s.timeRange.Start())
}

// EndsAt returns the instant the session ends.
func (s *TrainingSession) EndsAt() time.Time {
	return s.startDate.At(s.timeRange.End())
}

// HasEnded reports whether the session is over at now.
func (s *TrainingSession) HasEnded(now time.Time) bool {
	return s.timeRange.IsAlreadyEnded(s.startDate, now)
}

// ReserveSpot gives the participant a spot. A full session is reported
// before a duplicate booking.
func (s *TrainingSession) ReserveSpot(participantID uuid.UUID) error {
	if s.canceled {
		return ErrSessionCanceled
	}
	if err := s.participants.Add(participantID); err != nil {
		return err
	}
	reservation := Reservation{
		BaseEntity:    sharedDomain.NewBaseEntity(uuid.Nil),
		participantID: participantID,
	}
	s.reservations[participantID] = reservation
	s.addReservationEvent(RoutingKeySpotReserved, reservation)
	return nil
}

// CancelReservation gives the participant's spot back. It is refused once
// the session has ended or when the session starts within
// schedulingDomain.CancellationWindow of now.
func (s *TrainingSession) CancelReservation(participantID uuid.UUID, now time.Time) error {
	reservation, ok := s.reservations[participantID]
	if !ok {
		return ErrNoSuchReservation
	}
	if s.timeRange.IsAlreadyEnded(s.startDate, now) {
		return ErrSessionAlreadyEnded
	}
	if s.timeRange.IsPastCancellationDeadline(s.startDate, now) {
		return ErrCancellationTooLate
	}
	if err := s.participants.Remove(participantID); err != nil {
		return err
	}
	delete(s.reservations, participantID)
	s.addReservationEvent(RoutingKeyReservationCanceled, reservation)
	return nil
}

// Cancel calls the session off. Only sessions nobody reserved can be
// canceled.
func (s *TrainingSession) Cancel() error {
	if s.canceled {
		return ErrSessionCanceled
	}
	if s.participants.Count() > 0 {
		return ErrSessionHasReservations
	}
	s.canceled = true
	s.AddDomainEvent(&SessionCanceled{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), TrainingSessionAggregateType, RoutingKeySessionCanceled),
	})
	return nil
}

func (s *TrainingSession) addReservationEvent(routingKey string, reservation Reservation) {
	s.AddDomainEvent(&ReservationChanged{
		BaseEvent:      sharedDomain.NewBaseEvent(s.ID(), TrainingSessionAggregateType, routingKey),
		ReservationID:  reservation.ID(),
		ParticipantID:  reservation.participantID,
		AvailableSpots: s.AvailableSpots(),
	})
}

// ReservationSnapshot is the persisted state of a Reservation.
type ReservationSnapshot struct {
	ID            uuid.UUID `json:"id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	ReservedAt    time.Time `json:"reserved_at"`
}

// TrainingSessionSnapshot is the persisted state of a TrainingSession.
type TrainingSessionSnapshot struct {
	GymRoomID    uuid.UUID                  `json:"gym_room_id"`
	TrainerID    uuid.UUID                  `json:"trainer_id"`
	StartDate    schedulingDomain.Date      `json:"start_date"`
	TimeRange    schedulingDomain.TimeRange `json:"time_range"`
	SessionSize  int                        `json:"session_size"`
	Reservations []ReservationSnapshot      `json:"reservations"`
	Canceled     bool                       `json:"canceled"`
}

func (s *TrainingSession) Snapshot() TrainingSessionSnapshot {
	reservations := make([]ReservationSnapshot, 0, s.participants.Count())
	for _, r := range s.Reservations() {
		reservations = append(reservations, ReservationSnapshot{
			ID:            r.ID(),
			ParticipantID: r.participantID,
			ReservedAt:    r.CreatedAt(),
		})
	}
	return TrainingSessionSnapshot{
		GymRoomID:    s.gymRoomID,
		TrainerID:    s.trainerID,
		StartDate:    s.startDate,
		TimeRange:    s.timeRange,
		SessionSize:  s.sessionSize,
		Reservations: reservations,
		Canceled:     s.canceled,
	}
}

// RehydrateTrainingSession recreates a session from persisted state.
func RehydrateTrainingSession(base sharedDomain.BaseAggregateRoot, snap TrainingSessionSnapshot) *TrainingSession {
	participantIDs := make([]uuid.UUID, 0, len(snap.Reservations))
	reservations := make(map[uuid.UUID]Reservation, len(snap.Reservations))
	for _, r := range snap.Reservations {
		participantIDs = append(participantIDs, r.ParticipantID)
		reservations[r.ParticipantID] = Reservation{
			BaseEntity:    sharedDomain.RehydrateBaseEntity(r.ID, r.ReservedAt, r.ReservedAt),
			participantID: r.ParticipantID,
		}
	}
	return &TrainingSession{
		BaseAggregateRoot: base,
		gymRoomID:         snap.GymRoomID,
		trainerID:         snap.TrainerID,
		startDate:         snap.StartDate,
		timeRange:         snap.TimeRange,
		sessionSize:       snap.SessionSize,
		participants:      sharedDomain.RestoreCapacitySet(snap.SessionSize, reservationErrors, participantIDs),
		reservations:      reservations,
		canceled:          snap.Canceled,
	}
}
