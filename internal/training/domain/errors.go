package domain

import sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"

var (
	ErrInvalidSessionSize     = sharedDomain.NewError(sharedDomain.KindValidation, "training_session.invalid_size", "session size must be positive")
	ErrStartDateRequired      = sharedDomain.NewError(sharedDomain.KindValidation, "training_session.start_date_required", "session start date must be set")
	ErrTimeRangeRequired      = sharedDomain.NewError(sharedDomain.KindValidation, "training_session.time_range_required", "session time range must be set")
	ErrSessionCanceled        = sharedDomain.NewError(sharedDomain.KindValidation, "training_session.canceled", "session has been canceled")
	ErrSessionHasReservations = sharedDomain.NewError(sharedDomain.KindValidation, "training_session.has_reservations", "session still has reservations")
)

var (
	ErrNoAvailableSpot     = sharedDomain.NewError(sharedDomain.KindQuotaExceeded, "training_session.no_available_spot", "session has no available spot")
	ErrAlreadyReserved     = sharedDomain.NewError(sharedDomain.KindDuplicate, "training_session.already_reserved", "participant already reserved a spot")
	ErrNoSuchReservation   = sharedDomain.NewError(sharedDomain.KindNotFound, "training_session.reservation_not_found", "participant has no reservation")
	ErrSessionAlreadyEnded = sharedDomain.NewError(sharedDomain.KindTemporal, "training_session.already_ended", "session has already ended")
	ErrCancellationTooLate = sharedDomain.NewError(sharedDomain.KindTemporal, "training_session.cancellation_too_late", "too late to cancel the reservation")
)

var (
	ErrAlreadyCommitted = sharedDomain.NewError(sharedDomain.KindDuplicate, "commitment.already_committed", "session is already on the schedule")
	ErrNotCommitted     = sharedDomain.NewError(sharedDomain.KindNotFound, "commitment.not_committed", "session is not on the schedule")
)
