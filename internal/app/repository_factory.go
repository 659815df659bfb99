package app

import (
	"fmt"

	facilitiesDomain "github.com/Flinnker/Gym/internal/facilities/domain"
	facilitiesPersistence "github.com/Flinnker/Gym/internal/facilities/infrastructure/persistence"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
	subscriptionPersistence "github.com/Flinnker/Gym/internal/subscriptions/infrastructure/persistence"
	trainingDomain "github.com/Flinnker/Gym/internal/training/domain"
	trainingPersistence "github.com/Flinnker/Gym/internal/training/infrastructure/persistence"
)

// Repositories groups every repository of the gym contexts.
type Repositories struct {
	Subscriptions  subscriptionDomain.SubscriptionRepository
	Administrators subscriptionDomain.AdministratorRepository
	Gyms           facilitiesDomain.GymRepository
	Rooms          facilitiesDomain.GymRoomRepository
	Sessions       trainingDomain.TrainingSessionRepository
	Trainers       trainingDomain.TrainerRepository
	Participants   trainingDomain.ParticipantRepository
	Outbox         outbox.Repository
}

// RepositoryFactory creates repositories on top of one connection. The state
// store rebinds placeholders itself, so both drivers share the same
// implementations.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// Build creates all repositories.
func (f *RepositoryFactory) Build() (*Repositories, error) {
	if !f.driver.IsValid() {
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}

	return &Repositories{
		Subscriptions:  subscriptionPersistence.NewSubscriptionRepository(f.conn),
		Administrators: subscriptionPersistence.NewAdministratorRepository(f.conn),
		Gyms:           facilitiesPersistence.NewGymRepository(f.conn),
		Rooms:          facilitiesPersistence.NewGymRoomRepository(f.conn),
		Sessions:       trainingPersistence.NewTrainingSessionRepository(f.conn),
		Trainers:       trainingPersistence.NewTrainerRepository(f.conn),
		Participants:   trainingPersistence.NewParticipantRepository(f.conn),
		Outbox:         outbox.NewSQLRepository(f.conn),
	}, nil
}

// UnitOfWork creates a unit of work bound to the factory's connection.
func (f *RepositoryFactory) UnitOfWork() *database.UnitOfWork {
	return database.NewUnitOfWork(f.conn)
}
