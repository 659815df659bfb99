package domain

import (
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

var commitmentErrors = sharedDomain.CapacityErrors{
	QuotaExceeded:   ErrAlreadyCommitted,
	AlreadyMember:   ErrAlreadyCommitted,
	CollectionEmpty: ErrNotCommitted,
	NotMember:       ErrNotCommitted,
}

// commitments couples a personal schedule with the ids of the sessions that
// put entries on it. An id is tracked exactly when its range is on the
// schedule.
type commitments struct {
	schedule   schedulingDomain.Schedule
	sessionIDs sharedDomain.CapacitySet
}

func newCommitments() commitments {
	return commitments{
		schedule:   schedulingDomain.NewSchedule(),
		sessionIDs: sharedDomain.NewCapacitySet(sharedDomain.Unlimited, commitmentErrors),
	}
}

func restoreCommitments(snap CommitmentsSnapshot) (commitments, error) {
	schedule, err := schedulingDomain.RestoreSchedule(snap.Schedule)
	if err != nil {
		return commitments{}, err
	}
	return commitments{
		schedule:   schedule,
		sessionIDs: sharedDomain.RestoreCapacitySet(sharedDomain.Unlimited, commitmentErrors, snap.SessionIDs),
	}, nil
}

// commit reserves the range first and tracks the id only if that succeeded,
// so a failed reservation leaves nothing behind.
func (c *commitments) commit(sessionID uuid.UUID, date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	if c.sessionIDs.Contains(sessionID) {
		return ErrAlreadyCommitted
	}
	if err := c.schedule.Reserve(date, timeRange); err != nil {
		return err
	}
	return c.sessionIDs.Add(sessionID)
}

func (c *commitments) release(sessionID uuid.UUID, date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	if !c.sessionIDs.Contains(sessionID) {
		return ErrNotCommitted
	}
	if err := c.schedule.Release(date, timeRange); err != nil {
		return err
	}
	return c.sessionIDs.Remove(sessionID)
}

func (c *commitments) isFree(date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) bool {
	return c.schedule.IsFree(date, timeRange)
}

// CommitmentsSnapshot is the persisted schedule of a trainer or participant.
type CommitmentsSnapshot struct {
	Schedule   []schedulingDomain.ScheduleEntry `json:"schedule"`
	SessionIDs []uuid.UUID                      `json:"session_ids"`
}

func (c *commitments) snapshot() CommitmentsSnapshot {
	return CommitmentsSnapshot{
		Schedule:   c.schedule.Entries(),
		SessionIDs: c.sessionIDs.Members(),
	}
}
