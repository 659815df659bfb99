package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	facilitiesCommands "github.com/Flinnker/Gym/internal/facilities/application/commands"
	facilitiesQueries "github.com/Flinnker/Gym/internal/facilities/application/queries"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	_ "github.com/Flinnker/Gym/internal/shared/infrastructure/database/postgres"
	_ "github.com/Flinnker/Gym/internal/shared/infrastructure/database/sqlite"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/eventbus"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/lock"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/migrations"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	subscriptionCommands "github.com/Flinnker/Gym/internal/subscriptions/application/commands"
	subscriptionQueries "github.com/Flinnker/Gym/internal/subscriptions/application/queries"
	trainingCommands "github.com/Flinnker/Gym/internal/training/application/commands"
	trainingQueries "github.com/Flinnker/Gym/internal/training/application/queries"
	trainingSubscribers "github.com/Flinnker/Gym/internal/training/application/subscribers"
	"github.com/Flinnker/Gym/pkg/config"
	"github.com/Flinnker/Gym/pkg/observability"
)

// maxPendingOutbox is the backlog above which the outbox reports degraded.
const maxPendingOutbox = 10000

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics
	Clock   sharedDomain.Clock

	// Infrastructure
	DBConn          database.Connection
	RedisClient     *redis.Client
	Locker          sharedApplication.Locker
	UnitOfWork      sharedApplication.UnitOfWork
	Repositories    *Repositories
	OutboxRepo      outbox.Repository
	EventBus        *eventbus.InProcessEventBus
	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor
	Health          *observability.HealthRegistry

	// Subscribers
	BookingMetricsSubscriber *trainingSubscribers.BookingMetricsSubscriber

	// Subscription handlers
	CreateAdministratorHandler       sharedApplication.CommandHandler[subscriptionCommands.CreateAdministratorCommand, *subscriptionCommands.CreateAdministratorResult]
	CreateSubscriptionHandler        sharedApplication.CommandHandler[subscriptionCommands.CreateSubscriptionCommand, *subscriptionCommands.CreateSubscriptionResult]
	AssignSubscriptionHandler        sharedApplication.VoidCommandHandler[subscriptionCommands.AssignSubscriptionCommand]
	AddGymToSubscriptionHandler      sharedApplication.VoidCommandHandler[subscriptionCommands.AddGymToSubscriptionCommand]
	RemoveGymFromSubscriptionHandler sharedApplication.VoidCommandHandler[subscriptionCommands.RemoveGymFromSubscriptionCommand]
	DeactivateSubscriptionHandler    sharedApplication.VoidCommandHandler[subscriptionCommands.DeactivateSubscriptionCommand]
	GetSubscriptionHandler           *subscriptionQueries.GetSubscriptionHandler

	// Facilities handlers
	CreateGymHandler            sharedApplication.CommandHandler[facilitiesCommands.CreateGymCommand, *facilitiesCommands.CreateGymResult]
	AddTrainerToGymHandler      sharedApplication.VoidCommandHandler[facilitiesCommands.AddTrainerToGymCommand]
	RemoveTrainerFromGymHandler sharedApplication.VoidCommandHandler[facilitiesCommands.RemoveTrainerFromGymCommand]
	CreateGymRoomHandler        sharedApplication.CommandHandler[facilitiesCommands.CreateGymRoomCommand, *facilitiesCommands.CreateGymRoomResult]
	RemoveGymRoomHandler        sharedApplication.VoidCommandHandler[facilitiesCommands.RemoveGymRoomCommand]
	GetGymHandler               *facilitiesQueries.GetGymHandler

	// Training handlers
	CreateTrainerHandler      sharedApplication.CommandHandler[trainingCommands.CreateTrainerCommand, *trainingCommands.CreateTrainerResult]
	CreateParticipantHandler  sharedApplication.CommandHandler[trainingCommands.CreateParticipantCommand, *trainingCommands.CreateParticipantResult]
	ScheduleSessionHandler    sharedApplication.CommandHandler[trainingCommands.ScheduleSessionCommand, *trainingCommands.ScheduleSessionResult]
	CancelSessionHandler      sharedApplication.VoidCommandHandler[trainingCommands.CancelSessionCommand]
	ReserveSpotHandler        sharedApplication.CommandHandler[trainingCommands.ReserveSpotCommand, *trainingCommands.ReserveSpotResult]
	CancelReservationHandler  sharedApplication.VoidCommandHandler[trainingCommands.CancelReservationCommand]
	GetTrainingSessionHandler *trainingQueries.GetTrainingSessionHandler
	ListRoomSessionsHandler   *trainingQueries.ListRoomSessionsHandler
	CheckAvailabilityHandler  *trainingQueries.CheckAvailabilityHandler
}

// Option customizes a Container.
type Option func(*Container)

// WithMetrics replaces the no-op metrics sink.
func WithMetrics(metrics observability.Metrics) Option {
	return func(c *Container) { c.Metrics = metrics }
}

// WithClock replaces the system clock.
func WithClock(clock sharedDomain.Clock) Option {
	return func(c *Container) { c.Clock = clock }
}

// NewContainer creates and wires all dependencies. Redis and RabbitMQ are
// optional: without them locks stay in process and events are dispatched to
// the in-process bus.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NoopMetrics{},
		Clock:   sharedDomain.SystemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.initDatabase(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initLocker(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initEvents(); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()
	c.initHealth()

	logger.Info("container initialized",
		"driver", c.DBConn.Driver().String(),
		"local_mode", cfg.LocalMode,
		"redis", c.RedisClient != nil,
		"rabbitmq", cfg.RabbitMQURL != "",
	)

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	cfg := c.Config

	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn

	if err := migrations.Run(ctx, conn); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	factory := NewRepositoryFactory(conn)
	repos, err := factory.Build()
	if err != nil {
		return fmt.Errorf("failed to create repositories: %w", err)
	}
	c.Repositories = repos
	c.OutboxRepo = repos.Outbox
	c.UnitOfWork = factory.UnitOfWork()

	return nil
}

func (c *Container) initLocker(ctx context.Context) error {
	lockCfg := lock.DefaultConfig()
	if c.Config.LockTTL > 0 {
		lockCfg.TTL = c.Config.LockTTL
	}
	if c.Config.LockWait > 0 {
		lockCfg.Wait = c.Config.LockWait
	}

	if c.Config.RedisURL == "" {
		c.Locker = lock.NewMemoryLocker(lockCfg)
		return nil
	}

	opts, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.RedisClient = client
	c.Locker = lock.NewRedisLocker(client, lockCfg, c.Logger)
	return nil
}

func (c *Container) initEvents() error {
	cfg := c.Config

	c.BookingMetricsSubscriber = trainingSubscribers.NewBookingMetricsSubscriber(c.Metrics, c.Logger)
	c.EventBus = eventbus.NewInProcessEventBus(c.Logger)
	c.EventBus.RegisterConsumer(c.BookingMetricsSubscriber)

	if cfg.RabbitMQURL == "" {
		c.EventPublisher = c.EventBus
	} else {
		rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, c.Logger)
		if err != nil {
			return err
		}

		breakerCfg := eventbus.DefaultBreakerConfig()
		if cfg.PublisherBreakerThreshold > 0 {
			breakerCfg.FailureThreshold = cfg.PublisherBreakerThreshold
		}
		if cfg.PublisherBreakerTimeout > 0 {
			breakerCfg.Timeout = cfg.PublisherBreakerTimeout
		}
		breakerCfg.OnStateChange = func(name string, _, to gobreaker.State) {
			open := 0.0
			if to == gobreaker.StateOpen {
				open = 1
			}
			c.Metrics.Gauge(observability.MetricPublisherBreakerOpen, open, observability.T("publisher", name))
		}

		c.EventPublisher = &rabbitBreakerPublisher{
			BreakerPublisher: eventbus.NewBreakerPublisher(rabbit, breakerCfg, c.Logger),
			rabbit:           rabbit,
		}
	}

	processorCfg := outbox.DefaultProcessorConfig()
	if cfg.OutboxPollInterval > 0 {
		processorCfg.PollInterval = cfg.OutboxPollInterval
	}
	if cfg.OutboxBatchSize > 0 {
		processorCfg.BatchSize = cfg.OutboxBatchSize
	}
	if cfg.OutboxMaxRetries > 0 {
		processorCfg.MaxRetries = cfg.OutboxMaxRetries
	}
	if cfg.OutboxCleanupInterval > 0 {
		processorCfg.CleanupInterval = cfg.OutboxCleanupInterval
	}
	processorCfg.Retention = cfg.OutboxRetention()

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, processorCfg, c.Logger).
		WithMetrics(c.Metrics)

	return nil
}

func (c *Container) initHandlers() {
	repos := c.Repositories
	uow := c.UnitOfWork
	locker := c.Locker
	inst := sharedApplication.NewInstrumentation(c.Logger, c.Metrics)

	// Subscriptions
	c.CreateAdministratorHandler = sharedApplication.Instrument(
		subscriptionCommands.NewCreateAdministratorHandler(repos.Administrators, repos.Outbox, uow), inst)
	c.CreateSubscriptionHandler = sharedApplication.Instrument(
		subscriptionCommands.NewCreateSubscriptionHandler(repos.Subscriptions, repos.Administrators, repos.Outbox, uow, locker), inst)
	c.AssignSubscriptionHandler = sharedApplication.InstrumentVoid(
		subscriptionCommands.NewAssignSubscriptionHandler(repos.Administrators, repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.AddGymToSubscriptionHandler = sharedApplication.InstrumentVoid(
		subscriptionCommands.NewAddGymToSubscriptionHandler(repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.RemoveGymFromSubscriptionHandler = sharedApplication.InstrumentVoid(
		subscriptionCommands.NewRemoveGymFromSubscriptionHandler(repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.DeactivateSubscriptionHandler = sharedApplication.InstrumentVoid(
		subscriptionCommands.NewDeactivateSubscriptionHandler(repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.GetSubscriptionHandler = subscriptionQueries.NewGetSubscriptionHandler(repos.Subscriptions)

	// Facilities
	c.CreateGymHandler = sharedApplication.Instrument(
		facilitiesCommands.NewCreateGymHandler(repos.Gyms, repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.AddTrainerToGymHandler = sharedApplication.InstrumentVoid(
		facilitiesCommands.NewAddTrainerToGymHandler(repos.Gyms, repos.Trainers, repos.Outbox, uow, locker), inst)
	c.RemoveTrainerFromGymHandler = sharedApplication.InstrumentVoid(
		facilitiesCommands.NewRemoveTrainerFromGymHandler(repos.Gyms, repos.Outbox, uow, locker), inst)
	c.CreateGymRoomHandler = sharedApplication.Instrument(
		facilitiesCommands.NewCreateGymRoomHandler(repos.Gyms, repos.Rooms, repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.RemoveGymRoomHandler = sharedApplication.InstrumentVoid(
		facilitiesCommands.NewRemoveGymRoomHandler(repos.Gyms, repos.Rooms, repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.GetGymHandler = facilitiesQueries.NewGetGymHandler(repos.Gyms, repos.Rooms)

	// Training
	c.CreateTrainerHandler = sharedApplication.Instrument(
		trainingCommands.NewCreateTrainerHandler(repos.Trainers, repos.Outbox, uow), inst)
	c.CreateParticipantHandler = sharedApplication.Instrument(
		trainingCommands.NewCreateParticipantHandler(repos.Participants, repos.Outbox, uow), inst)
	c.ScheduleSessionHandler = sharedApplication.Instrument(
		trainingCommands.NewScheduleSessionHandler(repos.Sessions, repos.Trainers, repos.Rooms, repos.Gyms, repos.Subscriptions, repos.Outbox, uow, locker, c.Clock), inst)
	c.CancelSessionHandler = sharedApplication.InstrumentVoid(
		trainingCommands.NewCancelSessionHandler(repos.Sessions, repos.Trainers, repos.Rooms, repos.Gyms, repos.Subscriptions, repos.Outbox, uow, locker), inst)
	c.ReserveSpotHandler = sharedApplication.Instrument(
		trainingCommands.NewReserveSpotHandler(repos.Sessions, repos.Participants, repos.Outbox, uow, locker, c.Clock), inst)
	c.CancelReservationHandler = sharedApplication.InstrumentVoid(
		trainingCommands.NewCancelReservationHandler(repos.Sessions, repos.Participants, repos.Outbox, uow, locker, c.Clock), inst)
	c.GetTrainingSessionHandler = trainingQueries.NewGetTrainingSessionHandler(repos.Sessions, c.Clock)
	c.ListRoomSessionsHandler = trainingQueries.NewListRoomSessionsHandler(repos.Sessions, c.Clock)
	c.CheckAvailabilityHandler = trainingQueries.NewCheckAvailabilityHandler(repos.Rooms, repos.Trainers, repos.Participants)
}

func (c *Container) initHealth() {
	c.Health = observability.NewHealthRegistry(5 * time.Second)
	c.Health.Register("database", observability.DatabaseHealthChecker(c.DBConn.Ping))
	c.Health.Register("outbox", observability.OutboxBacklogChecker(c.OutboxRepo.CountPending, maxPendingOutbox))

	if c.RedisClient != nil {
		client := c.RedisClient
		c.Health.Register("redis", observability.PingHealthChecker("redis", observability.HealthStatusUnhealthy,
			func(ctx context.Context) error { return client.Ping(ctx).Err() }))
	}
	if rb, ok := c.EventPublisher.(*rabbitBreakerPublisher); ok {
		c.Health.Register("rabbitmq", observability.RabbitMQHealthChecker(rb.rabbit.Ping))
	}
}

// FlushEvents publishes whatever the outbox holds. Commands only write to the
// outbox, so one-shot processes call this before exiting when no worker runs.
func (c *Container) FlushEvents(ctx context.Context) error {
	for {
		pending, err := c.OutboxRepo.CountPending(ctx)
		if err != nil {
			return err
		}
		if pending == 0 {
			return nil
		}
		before := c.OutboxProcessor.GetStats()
		if err := c.OutboxProcessor.ProcessOnce(ctx); err != nil {
			return err
		}
		after := c.OutboxProcessor.GetStats()
		// Messages waiting for a retry are left to the next run.
		if after.PublishedCount == before.PublishedCount {
			return nil
		}
	}
}

// Close cleans up all resources.
func (c *Container) Close() {
	var errs []error

	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil && c.EventPublisher != eventbus.Publisher(c.EventBus) {
		errs = append(errs, c.EventPublisher.Close())
	}
	if c.EventBus != nil {
		errs = append(errs, c.EventBus.Close())
	}
	if c.RedisClient != nil {
		errs = append(errs, c.RedisClient.Close())
	}
	if c.DBConn != nil {
		errs = append(errs, c.DBConn.Close())
	}

	if err := errors.Join(errs...); err != nil {
		c.Logger.Warn("error closing container", "error", err)
	}
}

// rabbitBreakerPublisher keeps the broker reachable for health checks while
// publishing through the breaker.
type rabbitBreakerPublisher struct {
	*eventbus.BreakerPublisher
	rabbit *eventbus.RabbitMQPublisher
}
