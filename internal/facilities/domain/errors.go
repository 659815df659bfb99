package domain

import sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"

var (
	ErrSubscriptionTypeRequired = sharedDomain.NewError(sharedDomain.KindValidation, "gym.subscription_type_required", "gym requires a subscription type")
	ErrInvalidSpotCount         = sharedDomain.NewError(sharedDomain.KindValidation, "gym_room.invalid_spot_count", "gym room needs at least one spot")
	ErrSessionTooLarge          = sharedDomain.NewError(sharedDomain.KindValidation, "gym_room.session_too_large", "session has more spots than the room")
	ErrRoomHasSessions          = sharedDomain.NewError(sharedDomain.KindValidation, "gym_room.has_sessions", "room still holds training sessions")
)

var (
	ErrTrainerQuotaExceeded = sharedDomain.NewError(sharedDomain.KindQuotaExceeded, "gym.trainer_quota_exceeded", "gym does not allow more trainers")
	ErrTrainerAlreadyInGym  = sharedDomain.NewError(sharedDomain.KindDuplicate, "gym.trainer_already_added", "trainer already works in this gym")
	ErrTrainerNotInGym      = sharedDomain.NewError(sharedDomain.KindNotFound, "gym.trainer_not_found", "trainer does not work in this gym")
)

var (
	ErrGymRoomQuotaExceeded = sharedDomain.NewError(sharedDomain.KindQuotaExceeded, "gym.room_quota_exceeded", "subscription does not allow more rooms in this gym")
	ErrGymRoomAlreadyInGym  = sharedDomain.NewError(sharedDomain.KindDuplicate, "gym.room_already_added", "room already belongs to this gym")
	ErrGymHasNoRooms        = sharedDomain.NewError(sharedDomain.KindNotFound, "gym.no_rooms", "gym has no rooms")
	ErrGymRoomNotInGym      = sharedDomain.NewError(sharedDomain.KindNotFound, "gym.room_not_found", "room does not belong to this gym")
)

var (
	ErrDailySessionQuotaExceeded = sharedDomain.NewError(sharedDomain.KindQuotaExceeded, "gym_room.session_quota_exceeded", "subscription does not allow more sessions in this room")
	ErrSessionAlreadyInRoom      = sharedDomain.NewError(sharedDomain.KindDuplicate, "gym_room.session_already_added", "session is already held in this room")
	ErrRoomHasNoSessions         = sharedDomain.NewError(sharedDomain.KindNotFound, "gym_room.no_sessions", "room has no sessions")
	ErrSessionNotInRoom          = sharedDomain.NewError(sharedDomain.KindNotFound, "gym_room.session_not_found", "session is not held in this room")
)
