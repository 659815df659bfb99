package domain

import (
	"context"

	"github.com/google/uuid"
)

// TrainingSessionRepository persists training sessions.
type TrainingSessionRepository interface {
	Save(ctx context.Context, session *TrainingSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*TrainingSession, error)
	FindByGymRoomID(ctx context.Context, gymRoomID uuid.UUID) ([]*TrainingSession, error)
}

// TrainerRepository persists trainers.
type TrainerRepository interface {
	Save(ctx context.Context, trainer *Trainer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Trainer, error)
}

// ParticipantRepository persists participants.
type ParticipantRepository interface {
	Save(ctx context.Context, participant *Participant) error
	FindByID(ctx context.Context, id uuid.UUID) (*Participant, error)
}
