package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/adapter/cli/gym"
	"github.com/Flinnker/Gym/adapter/cli/member"
	"github.com/Flinnker/Gym/adapter/cli/outbox"
	"github.com/Flinnker/Gym/adapter/cli/session"
	"github.com/Flinnker/Gym/adapter/cli/subscription"
	"github.com/Flinnker/Gym/internal/app"
	"github.com/Flinnker/Gym/pkg/config"
	"github.com/Flinnker/Gym/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Command output goes to stdout; logs stay on stderr.
	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevelWarn
	if cfg.IsDevelopment() && cfg.LogLevel != "" {
		logCfg.Level = observability.LogLevel(cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		logCfg.Format = observability.LogFormat(cfg.LogFormat)
	}
	logCfg.ServiceVersion = cli.Version
	logger := observability.NewLogger(logCfg)
	slog.SetDefault(logger)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			// Commands report the missing database themselves; version and
			// help still work.
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		cliApp := cli.NewApp(container)
		// Local mode has no worker draining the outbox.
		if cfg.LocalMode {
			cliApp.FlushEvents = container.FlushEvents
		}
		cli.SetApp(cliApp)
	}

	// Register commands
	cli.AddCommand(subscription.Cmd)
	cli.AddCommand(subscription.AdminCmd)
	cli.AddCommand(gym.Cmd)
	cli.AddCommand(gym.RoomCmd)
	cli.AddCommand(member.TrainerCmd)
	cli.AddCommand(member.ParticipantCmd)
	cli.AddCommand(session.Cmd)
	cli.AddCommand(outbox.Cmd)

	// Execute CLI
	cli.Execute(ctx)
}
