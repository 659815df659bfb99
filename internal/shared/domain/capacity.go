package domain

import (
	"math"
	"slices"

	"github.com/google/uuid"
)

// Unlimited is the quota of collections a tier never caps.
const Unlimited = math.MaxInt

// CapacityErrors are the failures a CapacitySet reports. Each aggregate
// supplies its own so the error names the collection it guards.
type CapacityErrors struct {
	QuotaExceeded   error
	AlreadyMember   error
	CollectionEmpty error
	NotMember       error
}

// CapacitySet is an insertion-ordered set of foreign ids bounded by a quota.
// It never holds references to other aggregates.
type CapacitySet struct {
	quota   int
	errs    CapacityErrors
	members []uuid.UUID
	index   map[uuid.UUID]struct{}
}

// NewCapacitySet creates an empty set holding at most quota members.
func NewCapacitySet(quota int, errs CapacityErrors) CapacitySet {
	return CapacitySet{
		quota:   quota,
		errs:    errs,
		members: make([]uuid.UUID, 0),
		index:   make(map[uuid.UUID]struct{}),
	}
}

// QuotaReporter is implemented by aggregates whose collections are bounded
// by a quota. OverQuota names the collections holding more members than
// their quota.
type QuotaReporter interface {
	OverQuota() []string
}

// RestoreCapacitySet recreates a set from persisted members. Duplicates are
// collapsed. Members beyond the quota are kept; OverQuota reports them and
// Add refuses new members until enough are removed.
func RestoreCapacitySet(quota int, errs CapacityErrors, members []uuid.UUID) CapacitySet {
	s := NewCapacitySet(quota, errs)
	for _, id := range members {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.members = append(s.members, id)
	}
	return s
}

// Add inserts id. The quota is checked before membership, so a full set
// reports QuotaExceeded even for an id it already holds.
func (s *CapacitySet) Add(id uuid.UUID) error {
	if len(s.members) >= s.quota {
		return s.errs.QuotaExceeded
	}
	if _, ok := s.index[id]; ok {
		return s.errs.AlreadyMember
	}
	s.index[id] = struct{}{}
	s.members = append(s.members, id)
	return nil
}

// Remove deletes id. An empty set reports CollectionEmpty before membership
// is looked at.
func (s *CapacitySet) Remove(id uuid.UUID) error {
	if len(s.members) == 0 {
		return s.errs.CollectionEmpty
	}
	if _, ok := s.index[id]; !ok {
		return s.errs.NotMember
	}
	delete(s.index, id)
	i := slices.Index(s.members, id)
	s.members = slices.Delete(s.members, i, i+1)
	return nil
}

// Contains reports whether id is a member.
func (s *CapacitySet) Contains(id uuid.UUID) bool {
	_, ok := s.index[id]
	return ok
}

// Count returns the number of members.
func (s *CapacitySet) Count() int { return len(s.members) }

// Quota returns the maximum number of members.
func (s *CapacitySet) Quota() int { return s.quota }

// OverQuota reports whether the set holds more members than its quota,
// which only a restored set can.
func (s *CapacitySet) OverQuota() bool { return len(s.members) > s.quota }

// Remaining returns how many more members fit.
func (s *CapacitySet) Remaining() int {
	if s.quota == Unlimited {
		return Unlimited
	}
	return max(s.quota-len(s.members), 0)
}

// Members returns a copy of the members in insertion order.
func (s *CapacitySet) Members() []uuid.UUID {
	return slices.Clone(s.members)
}
