package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/pkg/observability"
)

// ErrNotInitialized is returned by commands that need the database when the
// container could not be built.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

var (
	verbose bool
	logger  *slog.Logger
)

type commandContext struct {
	startedAt time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCommand()

// NewRootCommand builds the gym root command. Execute uses a package-level
// instance; tests build their own.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gym",
		Short: "Gym - booking and capacity management",
		Long: `gym manages subscriptions, gyms, rooms and trainers, and books
participants into training sessions while enforcing subscription quotas
and room, trainer and participant schedules.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logger == nil {
				logger = slog.Default()
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = observability.NewRequestContext(ctx, "")
			if app != nil {
				ctx = observability.WithActorID(ctx, app.ActorID)
			}
			ctx = context.WithValue(ctx, commandContextKey{}, commandContext{startedAt: time.Now()})
			cmd.SetContext(ctx)

			logger.DebugContext(ctx, "command start", "command", cmd.CommandPath())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logger == nil {
				logger = slog.Default()
			}
			ctx := cmd.Context()

			if app != nil && app.FlushEvents != nil {
				if err := app.FlushEvents(ctx); err != nil {
					logger.WarnContext(ctx, "failed to flush events", "error", err)
				}
			}

			info, ok := ctx.Value(commandContextKey{}).(commandContext)
			if !ok {
				return nil
			}
			logger.DebugContext(ctx, "command end",
				"command", cmd.CommandPath(),
				"duration_ms", time.Since(info.startedAt).Milliseconds(),
			)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newHealthCommand())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Verbose reports whether --verbose was given.
func Verbose() bool {
	return verbose
}
