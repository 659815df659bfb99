package cli

import (
	"context"

	"github.com/google/uuid"

	internalApp "github.com/Flinnker/Gym/internal/app"
	facilitiesCommands "github.com/Flinnker/Gym/internal/facilities/application/commands"
	facilitiesQueries "github.com/Flinnker/Gym/internal/facilities/application/queries"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionCommands "github.com/Flinnker/Gym/internal/subscriptions/application/commands"
	subscriptionQueries "github.com/Flinnker/Gym/internal/subscriptions/application/queries"
	trainingCommands "github.com/Flinnker/Gym/internal/training/application/commands"
	trainingQueries "github.com/Flinnker/Gym/internal/training/application/queries"
	"github.com/Flinnker/Gym/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Subscription Command Handlers
	CreateAdministratorHandler       sharedApplication.CommandHandler[subscriptionCommands.CreateAdministratorCommand, *subscriptionCommands.CreateAdministratorResult]
	CreateSubscriptionHandler        sharedApplication.CommandHandler[subscriptionCommands.CreateSubscriptionCommand, *subscriptionCommands.CreateSubscriptionResult]
	AssignSubscriptionHandler        sharedApplication.VoidCommandHandler[subscriptionCommands.AssignSubscriptionCommand]
	AddGymToSubscriptionHandler      sharedApplication.VoidCommandHandler[subscriptionCommands.AddGymToSubscriptionCommand]
	RemoveGymFromSubscriptionHandler sharedApplication.VoidCommandHandler[subscriptionCommands.RemoveGymFromSubscriptionCommand]
	DeactivateSubscriptionHandler    sharedApplication.VoidCommandHandler[subscriptionCommands.DeactivateSubscriptionCommand]

	// Subscription Query Handlers
	GetSubscriptionHandler sharedApplication.QueryHandler[subscriptionQueries.GetSubscriptionQuery, *subscriptionQueries.SubscriptionDTO]

	// Facilities Command Handlers
	CreateGymHandler            sharedApplication.CommandHandler[facilitiesCommands.CreateGymCommand, *facilitiesCommands.CreateGymResult]
	AddTrainerToGymHandler      sharedApplication.VoidCommandHandler[facilitiesCommands.AddTrainerToGymCommand]
	RemoveTrainerFromGymHandler sharedApplication.VoidCommandHandler[facilitiesCommands.RemoveTrainerFromGymCommand]
	CreateGymRoomHandler        sharedApplication.CommandHandler[facilitiesCommands.CreateGymRoomCommand, *facilitiesCommands.CreateGymRoomResult]
	RemoveGymRoomHandler        sharedApplication.VoidCommandHandler[facilitiesCommands.RemoveGymRoomCommand]

	// Facilities Query Handlers
	GetGymHandler sharedApplication.QueryHandler[facilitiesQueries.GetGymQuery, *facilitiesQueries.GymDTO]

	// Training Command Handlers
	CreateTrainerHandler     sharedApplication.CommandHandler[trainingCommands.CreateTrainerCommand, *trainingCommands.CreateTrainerResult]
	CreateParticipantHandler sharedApplication.CommandHandler[trainingCommands.CreateParticipantCommand, *trainingCommands.CreateParticipantResult]
	ScheduleSessionHandler   sharedApplication.CommandHandler[trainingCommands.ScheduleSessionCommand, *trainingCommands.ScheduleSessionResult]
	CancelSessionHandler     sharedApplication.VoidCommandHandler[trainingCommands.CancelSessionCommand]
	ReserveSpotHandler       sharedApplication.CommandHandler[trainingCommands.ReserveSpotCommand, *trainingCommands.ReserveSpotResult]
	CancelReservationHandler sharedApplication.VoidCommandHandler[trainingCommands.CancelReservationCommand]

	// Training Query Handlers
	GetTrainingSessionHandler sharedApplication.QueryHandler[trainingQueries.GetTrainingSessionQuery, *trainingQueries.TrainingSessionDTO]
	ListRoomSessionsHandler   sharedApplication.QueryHandler[trainingQueries.ListRoomSessionsQuery, []trainingQueries.TrainingSessionDTO]
	CheckAvailabilityHandler  sharedApplication.QueryHandler[trainingQueries.CheckAvailabilityQuery, *trainingQueries.AvailabilityDTO]

	// Health reports the state of the backing services.
	Health *observability.HealthRegistry

	// Outbox exposes pending and dead-lettered events for inspection.
	Outbox outbox.Repository

	// FlushEvents publishes pending outbox messages after each command.
	// Nil when a worker drains the outbox.
	FlushEvents func(ctx context.Context) error

	// Actor issuing the commands (configured per environment)
	ActorID uuid.UUID
}

// NewApp creates a CLI application backed by the container's handlers.
func NewApp(c *internalApp.Container) *App {
	return &App{
		CreateAdministratorHandler:       c.CreateAdministratorHandler,
		CreateSubscriptionHandler:        c.CreateSubscriptionHandler,
		AssignSubscriptionHandler:        c.AssignSubscriptionHandler,
		AddGymToSubscriptionHandler:      c.AddGymToSubscriptionHandler,
		RemoveGymFromSubscriptionHandler: c.RemoveGymFromSubscriptionHandler,
		DeactivateSubscriptionHandler:    c.DeactivateSubscriptionHandler,
		GetSubscriptionHandler:           c.GetSubscriptionHandler,
		CreateGymHandler:                 c.CreateGymHandler,
		AddTrainerToGymHandler:           c.AddTrainerToGymHandler,
		RemoveTrainerFromGymHandler:      c.RemoveTrainerFromGymHandler,
		CreateGymRoomHandler:             c.CreateGymRoomHandler,
		RemoveGymRoomHandler:             c.RemoveGymRoomHandler,
		GetGymHandler:                    c.GetGymHandler,
		CreateTrainerHandler:             c.CreateTrainerHandler,
		CreateParticipantHandler:         c.CreateParticipantHandler,
		ScheduleSessionHandler:           c.ScheduleSessionHandler,
		CancelSessionHandler:             c.CancelSessionHandler,
		ReserveSpotHandler:               c.ReserveSpotHandler,
		CancelReservationHandler:         c.CancelReservationHandler,
		GetTrainingSessionHandler:        c.GetTrainingSessionHandler,
		ListRoomSessionsHandler:          c.ListRoomSessionsHandler,
		CheckAvailabilityHandler:         c.CheckAvailabilityHandler,
		Health:                           c.Health,
		Outbox:                           c.OutboxRepo,
		ActorID:                          c.Config.ActorID,
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the application or an error when the CLI runs without
// a database.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}
