package cli

import (
	"fmt"

	"github.com/google/uuid"

	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
)

// ParseID parses a UUID argument, naming what it identifies on failure.
func ParseID(what, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID: %w", what, err)
	}
	return id, nil
}

// ParseSlot parses a YYYY-MM-DD date and an HH:MM start and end.
func ParseSlot(date, start, end string) (schedulingDomain.Date, schedulingDomain.TimeRange, error) {
	d, err := schedulingDomain.ParseDate(date)
	if err != nil {
		return schedulingDomain.Date{}, schedulingDomain.TimeRange{}, err
	}
	from, err := schedulingDomain.ParseTimeOfDay(start)
	if err != nil {
		return schedulingDomain.Date{}, schedulingDomain.TimeRange{}, err
	}
	to, err := schedulingDomain.ParseTimeOfDay(end)
	if err != nil {
		return schedulingDomain.Date{}, schedulingDomain.TimeRange{}, err
	}
	tr, err := schedulingDomain.NewTimeRange(from, to)
	if err != nil {
		return schedulingDomain.Date{}, schedulingDomain.TimeRange{}, err
	}
	return d, tr, nil
}
