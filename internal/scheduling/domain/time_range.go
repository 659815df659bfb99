package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// CancellationWindow is how long before a session starts a reservation can
// still be cancelled.
const CancellationWindow = 6 * time.Hour

// TimeRange is a validated interval within a single day. The zero value is
// not a valid range; use NewTimeRange.
type TimeRange struct {
	start TimeOfDay
	end   TimeOfDay
}

// NewTimeRange validates and creates a time range.
func NewTimeRange(start, end TimeOfDay) (TimeRange, error) {
	if start == 0 || !start.Valid() {
		return TimeRange{}, ErrInvalidStart
	}
	if end == 0 || !end.Valid() {
		return TimeRange{}, ErrInvalidEnd
	}
	if start > end {
		return TimeRange{}, ErrEndBeforeStart
	}
	if start == end {
		return TimeRange{}, ErrZeroDuration
	}
	return TimeRange{start: start, end: end}, nil
}

// ParseTimeRange parses "HH:MM" bounds and validates them.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeRange{}, err
	}
	return NewTimeRange(s, e)
}

func (r TimeRange) Start() TimeOfDay        { return r.start }
func (r TimeRange) End() TimeOfDay          { return r.end }
func (r TimeRange) Duration() time.Duration { return time.Duration(r.end - r.start) }

// IsZero reports whether r is the unset zero value.
func (r TimeRange) IsZero() bool { return r == TimeRange{} }

// Overlaps reports whether the ranges share any instant. Ranges that only
// touch (one ends where the other starts) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return !(r.end <= other.start || other.end <= r.start)
}

// IsAlreadyEnded reports whether the range on date has ended at now.
// The end instant itself counts as ended.
func (r TimeRange) IsAlreadyEnded(date Date, now time.Time) bool {
	return date.At(r.end).Sub(now) <= 0
}

// IsPastCancellationDeadline reports whether now is within
// CancellationWindow of the range's start on date.
func (r TimeRange) IsPastCancellationDeadline(date Date, now time.Time) bool {
	return date.At(r.start).Sub(now) < CancellationWindow
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.start, r.end)
}

type timeRangeJSON struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (r TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeRangeJSON{Start: r.start, End: r.end})
}

// UnmarshalJSON runs the decoded bounds through NewTimeRange so persisted
// state cannot bypass validation.
func (r *TimeRange) UnmarshalJSON(data []byte) error {
	var raw timeRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewTimeRange(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
