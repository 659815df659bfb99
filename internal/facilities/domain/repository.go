package domain

import (
	"context"

	"github.com/google/uuid"
)

// GymRepository persists gyms.
type GymRepository interface {
	Save(ctx context.Context, gym *Gym) error
	FindByID(ctx context.Context, id uuid.UUID) (*Gym, error)
	FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*Gym, error)
}

// GymRoomRepository persists gym rooms.
type GymRoomRepository interface {
	Save(ctx context.Context, room *GymRoom) error
	FindByID(ctx context.Context, id uuid.UUID) (*GymRoom, error)
	FindByGymID(ctx context.Context, gymID uuid.UUID) ([]*GymRoom, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
