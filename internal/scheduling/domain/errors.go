package domain

import sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"

var (
	ErrInvalidStart      = sharedDomain.NewError(sharedDomain.KindValidation, "time_range.invalid_start", "start time must be set")
	ErrInvalidEnd        = sharedDomain.NewError(sharedDomain.KindValidation, "time_range.invalid_end", "end time must be set")
	ErrEndBeforeStart    = sharedDomain.NewError(sharedDomain.KindValidation, "time_range.end_before_start", "end time is before start time")
	ErrTimeRangeRequired = sharedDomain.NewError(sharedDomain.KindValidation, "time_range.required", "time range must be set")
	ErrZeroDuration      = sharedDomain.NewError(sharedDomain.KindValidation, "time_range.zero_duration", "start and end time are equal")
	ErrInvalidDate       = sharedDomain.NewError(sharedDomain.KindValidation, "calendar.invalid_date", "date must be formatted as YYYY-MM-DD")
	ErrInvalidTimeOfDay  = sharedDomain.NewError(sharedDomain.KindValidation, "calendar.invalid_time_of_day", "time of day must be formatted as HH:MM")

	ErrOverlap       = sharedDomain.NewError(sharedDomain.KindOverlap, "schedule.overlap", "time range overlaps an existing reservation")
	ErrRangeNotFound = sharedDomain.NewError(sharedDomain.KindNotFound, "schedule.range_not_found", "time range is not reserved on this date")
)
