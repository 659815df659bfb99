package domain

import (
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	"github.com/google/uuid"
)

// Gym groups rooms and trainers under one subscription. The number of rooms
// is bounded by the subscription tier; trainers are not.
type Gym struct {
	sharedDomain.BaseAggregateRoot
	subscriptionID   uuid.UUID
	subscriptionType subscriptionDomain.SubscriptionType
	name             string
	trainerIDs       sharedDomain.CapacitySet
	gymRoomIDs       sharedDomain.CapacitySet
}

var (
	trainerCapacityErrors = sharedDomain.CapacityErrors{
		QuotaExceeded:   ErrTrainerQuotaExceeded,
		AlreadyMember:   ErrTrainerAlreadyInGym,
		CollectionEmpty: ErrTrainerNotInGym,
		NotMember:       ErrTrainerNotInGym,
	}
	roomCapacityErrors = sharedDomain.CapacityErrors{
		QuotaExceeded:   ErrGymRoomQuotaExceeded,
		AlreadyMember:   ErrGymRoomAlreadyInGym,
		CollectionEmpty: ErrGymHasNoRooms,
		NotMember:       ErrGymRoomNotInGym,
	}
)

// NewGym creates an empty gym.
func NewGym(id, subscriptionID uuid.UUID, name string, subscriptionType subscriptionDomain.SubscriptionType) (*Gym, error) {
	if subscriptionType.IsZero() {
		return nil, ErrSubscriptionTypeRequired
	}
	g := &Gym{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(id),
		subscriptionID:    subscriptionID,
		subscriptionType:  subscriptionType,
		name:              name,
		trainerIDs:        sharedDomain.NewCapacitySet(sharedDomain.Unlimited, trainerCapacityErrors),
		gymRoomIDs:        sharedDomain.NewCapacitySet(subscriptionType.MaxGymRoomCount(), roomCapacityErrors),
	}
	g.AddDomainEvent(&GymCreated{
		BaseEvent:        sharedDomain.NewBaseEvent(g.ID(), GymAggregateType, RoutingKeyGymCreated),
		SubscriptionID:   subscriptionID,
		SubscriptionType: subscriptionType.Name(),
		Name:             name,
	})
	return g, nil
}

func (g *Gym) SubscriptionID() uuid.UUID                             { return g.subscriptionID }
func (g *Gym) SubscriptionType() subscriptionDomain.SubscriptionType { return g.subscriptionType }
func (g *Gym) Name() string                                          { return g.name }
func (g *Gym) MaxRoomCount() int                                     { return g.subscriptionType.MaxGymRoomCount() }
func (g *Gym) GymRoomCount() int                                     { return g.gymRoomIDs.Count() }
func (g *Gym) TrainerCount() int                                     { return g.trainerIDs.Count() }
func (g *Gym) GymRoomIDs() []uuid.UUID                               { return g.gymRoomIDs.Members() }
func (g *Gym) TrainerIDs() []uuid.UUID                               { return g.trainerIDs.Members() }
func (g *Gym) HasTrainer(trainerID uuid.UUID) bool                   { return g.trainerIDs.Contains(trainerID) }
func (g *Gym) HasGymRoom(gymRoomID uuid.UUID) bool                   { return g.gymRoomIDs.Contains(gymRoomID) }

// AddTrainer hires a trainer.
func (g *Gym) AddTrainer(trainerID uuid.UUID) error {
	if err := g.trainerIDs.Add(trainerID); err != nil {
		return err
	}
	g.AddDomainEvent(newGymMembershipChanged(g.ID(), RoutingKeyGymTrainerAdded, trainerID, g.trainerIDs.Count()))
	return nil
}

// RemoveTrainer lets a trainer go.
func (g *Gym) RemoveTrainer(trainerID uuid.UUID) error {
	if err := g.trainerIDs.Remove(trainerID); err != nil {
		return err
	}
	g.AddDomainEvent(newGymMembershipChanged(g.ID(), RoutingKeyGymTrainerRemoved, trainerID, g.trainerIDs.Count()))
	return nil
}

// AddGymRoom attaches a room, subject to the tier's room quota.
func (g *Gym) AddGymRoom(gymRoomID uuid.UUID) error {
	if err := g.gymRoomIDs.Add(gymRoomID); err != nil {
		return err
	}
	g.AddDomainEvent(newGymMembershipChanged(g.ID(), RoutingKeyGymRoomAdded, gymRoomID, g.gymRoomIDs.Count()))
	return nil
}

// RemoveGymRoom detaches a room.
func (g *Gym) RemoveGymRoom(gymRoomID uuid.UUID) error {
	if err := g.gymRoomIDs.Remove(gymRoomID); err != nil {
		return err
	}
	g.AddDomainEvent(newGymMembershipChanged(g.ID(), RoutingKeyGymRoomRemoved, gymRoomID, g.gymRoomIDs.Count()))
	return nil
}

// OverQuota names the collections holding more members than the tier allows.
func (g *Gym) OverQuota() []string {
	var over []string
	if g.gymRoomIDs.OverQuota() {
		over = append(over, "gym_rooms")
	}
	return over
}

// GymSnapshot is the persisted state of a Gym.
type GymSnapshot struct {
	SubscriptionID   uuid.UUID                           `json:"subscription_id"`
	SubscriptionType subscriptionDomain.SubscriptionType `json:"subscription_type"`
	Name             string                              `json:"name"`
	TrainerIDs       []uuid.UUID                         `json:"trainer_ids"`
	GymRoomIDs       []uuid.UUID                         `json:"gym_room_ids"`
}

func (g *Gym) Snapshot() GymSnapshot {
	return GymSnapshot{
		SubscriptionID:   g.subscriptionID,
		SubscriptionType: g.subscriptionType,
		Name:             g.name,
		TrainerIDs:       g.trainerIDs.Members(),
		GymRoomIDs:       g.gymRoomIDs.Members(),
	}
}

// RehydrateGym recreates a gym from persisted state.
func RehydrateGym(base sharedDomain.BaseAggregateRoot, snap GymSnapshot) *Gym {
	return &Gym{
		BaseAggregateRoot: base,
		subscriptionID:    snap.SubscriptionID,
		subscriptionType:  snap.SubscriptionType,
		name:              snap.Name,
		trainerIDs:        sharedDomain.RestoreCapacitySet(sharedDomain.Unlimited, trainerCapacityErrors, snap.TrainerIDs),
		gymRoomIDs:        sharedDomain.RestoreCapacitySet(snap.SubscriptionType.MaxGymRoomCount(), roomCapacityErrors, snap.GymRoomIDs),
	}
}
