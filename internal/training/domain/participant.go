package domain

import (
	schedulingDomain "github.com/Flinnker/Gym/internal/scheduling/domain"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/google/uuid"
)

// Participant attends training sessions. Like a trainer, a participant
// cannot book two sessions that overlap.
type Participant struct {
	sharedDomain.BaseAggregateRoot
	name        string
	commitments commitments
}

// NewParticipant creates a participant with an empty schedule.
func NewParticipant(id uuid.UUID, name string) *Participant {
	p := &Participant{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(id),
		name:              name,
		commitments:       newCommitments(),
	}
	p.AddDomainEvent(&PersonCreated{
		BaseEvent: sharedDomain.NewBaseEvent(p.ID(), ParticipantAggregateType, RoutingKeyParticipantCreated),
		Name:      name,
	})
	return p
}

func (p *Participant) Name() string                                { return p.name }
func (p *Participant) SessionIDs() []uuid.UUID                     { return p.commitments.sessionIDs.Members() }
func (p *Participant) Schedule() []schedulingDomain.ScheduleEntry { return p.commitments.schedule.Entries() }

// CommitSession puts a reserved session on the participant's schedule.
func (p *Participant) CommitSession(sessionID uuid.UUID, date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	if err := p.commitments.commit(sessionID, date, timeRange); err != nil {
		return err
	}
	p.AddDomainEvent(newCommitmentChanged(p.ID(), ParticipantAggregateType, RoutingKeyParticipantCommitted, sessionID, date, timeRange))
	return nil
}

// ReleaseSession takes a session off the participant's schedule.
func (p *Participant) ReleaseSession(sessionID uuid.UUID, date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) error {
	if err := p.commitments.release(sessionID, date, timeRange); err != nil {
		return err
	}
	p.AddDomainEvent(newCommitmentChanged(p.ID(), ParticipantAggregateType, RoutingKeyParticipantReleased, sessionID, date, timeRange))
	return nil
}

func (p *Participant) IsFree(date schedulingDomain.Date, timeRange schedulingDomain.TimeRange) bool {
	return p.commitments.isFree(date, timeRange)
}

// ParticipantSnapshot is the persisted state of a Participant.
type ParticipantSnapshot struct {
	Name        string              `json:"name"`
	Commitments CommitmentsSnapshot `json:"commitments"`
}

func (p *Participant) Snapshot() ParticipantSnapshot {
	return ParticipantSnapshot{Name: p.name, Commitments: p.commitments.snapshot()}
}

// RehydrateParticipant recreates a participant from persisted state.
func RehydrateParticipant(base sharedDomain.BaseAggregateRoot, snap ParticipantSnapshot) (*Participant, error) {
	c, err := restoreCommitments(snap.Commitments)
	if err != nil {
		return nil, err
	}
	return &Participant{BaseAggregateRoot: base, name: snap.Name, commitments: c}, nil
}
