package domain

import sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"

var (
	ErrUnknownSubscriptionType = sharedDomain.NewError(sharedDomain.KindValidation, "subscription.unknown_type", "unknown subscription type")
	ErrSubscriptionInactive    = sharedDomain.NewError(sharedDomain.KindValidation, "subscription.inactive", "subscription is not active")
)

var (
	ErrGymQuotaExceeded     = sharedDomain.NewError(sharedDomain.KindQuotaExceeded, "subscription.gym_quota_exceeded", "subscription does not allow more gyms")
	ErrGymAlreadyAdded      = sharedDomain.NewError(sharedDomain.KindDuplicate, "subscription.gym_already_added", "gym is already part of the subscription")
	ErrNoGyms               = sharedDomain.NewError(sharedDomain.KindNotFound, "subscription.no_gyms", "subscription has no gyms")
	ErrGymNotInSubscription = sharedDomain.NewError(sharedDomain.KindNotFound, "subscription.gym_not_found", "gym is not part of the subscription")
)

var (
	ErrGymRoomQuotaExceeded     = sharedDomain.NewError(sharedDomain.KindQuotaExceeded, "subscription.room_quota_exceeded", "subscription does not allow more gym rooms")
	ErrGymRoomAlreadyAdded      = sharedDomain.NewError(sharedDomain.KindDuplicate, "subscription.room_already_added", "gym room is already part of the subscription")
	ErrNoGymRooms               = sharedDomain.NewError(sharedDomain.KindNotFound, "subscription.no_rooms", "subscription has no gym rooms")
	ErrGymRoomNotInSubscription = sharedDomain.NewError(sharedDomain.KindNotFound, "subscription.room_not_found", "gym room is not part of the subscription")
)

var (
	ErrSessionQuotaExceeded     = sharedDomain.NewError(sharedDomain.KindQuotaExceeded, "subscription.session_quota_exceeded", "subscription does not allow more daily sessions")
	ErrSessionAlreadyAdded      = sharedDomain.NewError(sharedDomain.KindDuplicate, "subscription.session_already_added", "training session is already part of the subscription")
	ErrNoSessions               = sharedDomain.NewError(sharedDomain.KindNotFound, "subscription.no_sessions", "subscription has no training sessions")
	ErrSessionNotInSubscription = sharedDomain.NewError(sharedDomain.KindNotFound, "subscription.session_not_found", "training session is not part of the subscription")
)

var (
	ErrSubscriptionAlreadyAssigned = sharedDomain.NewError(sharedDomain.KindDuplicate, "administrator.subscription_already_assigned", "administrator already has this subscription")
)
