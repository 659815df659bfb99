package domain

import (
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	TrainingSessionAggregateType = "TrainingSession"
	TrainerAggregateType         = "Trainer"
	ParticipantAggregateType     = "Participant"

	RoutingKeySessionScheduled     = "training.session.scheduled"
	RoutingKeySessionCanceled      = "training.session.canceled"
	RoutingKeySpotReserved         = "training.session.spot_reserved"
	RoutingKeyReservationCanceled  = "training.session.reservation_canceled"
	RoutingKeyTrainerCreated       = "training.trainer.created"
	RoutingKeyTrainerCommitted     = "training.trainer.session_committed"
	RoutingKeyTrainerReleased      = "training.trainer.session_released"
	RoutingKeyParticipantCreated   = "training.participant.created"
	RoutingKeyParticipantCommitted = "training.participant.session_committed"
	RoutingKeyParticipantReleased  = "training.participant.session_released"
)

// SessionScheduled is emitted when a training session is put on a room's schedule.
type SessionScheduled struct {
	sharedDomain.BaseEvent
	GymRoomID   uuid.UUID                  `json:"gym_room_id"`
	TrainerID   uuid.UUID                  `json:"trainer_id"`
	StartDate   schedulingDomain.Date      `json:"start_date"`
	TimeRange   schedulingDomain.TimeRange `json:"time_range"`
	SessionSize int                        `json:"session_size"`
}

// SessionCanceled is emitted when a session without reservations is called off.
type SessionCanceled struct {
	sharedDomain.BaseEvent
}

// ReservationChanged is emitted when a participant takes or gives up a spot.
type ReservationChanged struct {
	sharedDomain.BaseEvent
	ReservationID  uuid.UUID `json:"reservation_id"`
	ParticipantID  uuid.UUID `json:"participant_id"`
	AvailableSpots int       `json:"available_spots"`
}

// PersonCreated is emitted when a trainer or participant signs up.
type PersonCreated struct {
	sharedDomain.BaseEvent
	Name string `json:"name"`
}

// CommitmentChanged is emitted when a session is added to or removed from a
// trainer's or participant's schedule.
type CommitmentChanged struct {
	sharedDomain.BaseEvent
	TrainingSessionID uuid.UUID                  `json:"training_session_id"`
	Date              schedulingDomain.Date      `json:"date"`
	TimeRange         schedulingDomain.TimeRange `json:"time_range"`
}
