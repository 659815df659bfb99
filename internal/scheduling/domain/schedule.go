package domain

import (
	"slices"
)

// Schedule holds the reserved time ranges of a single owner, bucketed by
// date. No two ranges on the same date overlap. The zero value is an empty
// schedule ready to use.
type Schedule struct {
	days map[Date][]TimeRange
}

// ScheduleEntry is the persisted form of one date bucket.
type ScheduleEntry struct {
	Date   Date        `json:"date"`
	Ranges []TimeRange `json:"ranges"`
}

// NewSchedule creates an empty schedule.
func NewSchedule() Schedule {
	return Schedule{days: make(map[Date][]TimeRange)}
}

// RestoreSchedule rebuilds a schedule from persisted entries. Entries that
// would violate the no-overlap rule are rejected.
func RestoreSchedule(entries []ScheduleEntry) (Schedule, error) {
	s := NewSchedule()
	for _, entry := range entries {
		for _, r := range entry.Ranges {
			if err := s.Reserve(entry.Date, r); err != nil {
				return Schedule{}, err
			}
		}
	}
	return s, nil
}

// Reserve adds r on date unless it overlaps a range already reserved there.
// Ranges keep their insertion order within a date.
func (s *Schedule) Reserve(date Date, r TimeRange) error {
	if r.IsZero() {
		return ErrTimeRangeRequired
	}
	if s.days == nil {
		s.days = make(map[Date][]TimeRange)
	}
	if !s.IsFree(date, r) {
		return ErrOverlap
	}
	s.days[date] = append(s.days[date], r)
	return nil
}

// Release removes exactly r from date. A range that merely overlaps r is
// left alone.
func (s *Schedule) Release(date Date, r TimeRange) error {
	ranges, ok := s.days[date]
	if !ok {
		return ErrRangeNotFound
	}
	i := slices.Index(ranges, r)
	if i < 0 {
		return ErrRangeNotFound
	}
	ranges = slices.Delete(ranges, i, i+1)
	if len(ranges) == 0 {
		delete(s.days, date)
		return nil
	}
	s.days[date] = ranges
	return nil
}

// IsFree reports whether r could be reserved on date.
func (s *Schedule) IsFree(date Date, r TimeRange) bool {
	for _, existing := range s.days[date] {
		if existing.Overlaps(r) {
			return false
		}
	}
	return true
}

// RangesOn returns a copy of the ranges reserved on date.
func (s *Schedule) RangesOn(date Date) []TimeRange {
	return slices.Clone(s.days[date])
}

// Dates returns every date with at least one reservation, earliest first.
func (s *Schedule) Dates() []Date {
	dates := make([]Date, 0, len(s.days))
	for d := range s.days {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, func(a, b Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	return dates
}

// Len returns the total number of reserved ranges.
func (s *Schedule) Len() int {
	n := 0
	for _, ranges := range s.days {
		n += len(ranges)
	}
	return n
}

// Entries returns the schedule in its persisted form, dates in order.
func (s *Schedule) Entries() []ScheduleEntry {
	dates := s.Dates()
	entries := make([]ScheduleEntry, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, ScheduleEntry{Date: d, Ranges: s.RangesOn(d)})
	}
	return entries
}
