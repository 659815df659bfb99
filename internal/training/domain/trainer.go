package domain

import (
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

// Trainer leads training sessions and cannot be in two places at once.
type Trainer struct {
	sharedDomain.BaseAggregateRoot
	name        string
	commitments commitments
}

// NewTrainer creates a trainer with an empty schedule.
func NewTrainer(id uuid.UUID, name string) *Trainer {
	t := &Trainer{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(id),
		name:              name,
		commitments:       newCommitments(),
	}
	t.AddDomainEvent(&PersonCreated{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID(), TrainerAggregateType, RoutingKeyTrainerCreated),
		Name:      name,
	})
	return t
}

func (t *Trainer) Name() string { return t.name }

// SessionIDs returns the sessions the trainer committed to.
func (t *Trainer) SessionIDs() []uuid.UUID { return t.commitments.sessionIDs.Members() }

// Schedule returns the trainer's bookings by date.
func (t *Trainer) Schedule() []schedulingDomain.ScheduleEntry { return t.commitments.schedule.Entries() }

// CommitSession puts a session on the trainer's schedule.
func (t *Trainer) CommitSession(sessionID uuid.UUID, date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	if err := t.commitments.commit(sessionID, date, timeRange); err != nil {
		return err
	}
	t.AddDomainEvent(newCommitmentChanged(t.ID(), TrainerAggregateType, RoutingKeyTrainerCommitted, sessionID, date, timeRange))
	return nil
}

// ReleaseSession takes a session off the trainer's schedule.
func (t *Trainer) ReleaseSession(sessionID uuid.UUID, date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	if err := t.commitments.release(sessionID, date, timeRange); err != nil {
		return err
	}
	t.AddDomainEvent(newCommitmentChanged(t.ID(), TrainerAggregateType, RoutingKeyTrainerReleased, sessionID, date, timeRange))
	return nil
}

// IsFree reports whether the trainer has nothing booked over the range.
func (t *Trainer) IsFree(date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) bool {
	return t.commitments.isFree(date, timeRange)
}

// TrainerSnapshot is the persisted state of a Trainer.
type TrainerSnapshot struct {
	Name        string              `json:"name"`
	Commitments CommitmentsSnapshot `json:"commitments"`
}

func (t *Trainer) Snapshot() TrainerSnapshot {
	return TrainerSnapshot{Name: t.name, Commitments: t.commitments.snapshot()}
}

// RehydrateTrainer recreates a trainer from persisted state.
func RehydrateTrainer(base sharedDomain.BaseAggregateRoot, snap TrainerSnapshot) (*Trainer, error) {
	c, err := restoreCommitments(snap.Commitments)
	if err != nil {
		return nil, err
	}
	return &Trainer{BaseAggregateRoot: base, name: snap.Name, commitments: c}, nil
}

func newCommitmentChanged(
	aggregateID uuid.UUID,
	aggregateType, routingKey string,
	sessionID uuid.UUID,
	date schedulingDomain.Date,
	timeRange schedulingDomain.TimeRange,
) *CommitmentChanged {
	return &CommitmentChanged{
		BaseEvent:         sharedDomain.NewBaseEvent(aggregateID, aggregateType, routingKey),
		TrainingSessionID: sessionID,
		Date:              date,
		TimeRange:         timeRange,
	}
}
