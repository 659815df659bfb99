package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/training/application/queries"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability <room|trainer|participant> <id>",
	Short: "Check whether a room, trainer or participant is free",
	Long: `Check whether a resource has nothing booked in the given slot.

Examples:
  gym session availability trainer <trainer-id> --date 2026-03-02 --start 18:00 --end 19:00`,
	Aliases: []string{"free"},
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		kind := queries.ResourceKind(args[0])
		id, err := cli.ParseID(args[0], args[1])
		if err != nil {
			return err
		}
		day, timeRange, err := cli.ParseSlot(date, start, end)
		if err != nil {
			return err
		}

		result, err := app.CheckAvailabilityHandler.Handle(cmd.Context(), queries.CheckAvailabilityQuery{
			Kind:      kind,
			ID:        id,
			Date:      day,
			TimeRange: timeRange,
		})
		if err != nil {
			return fmt.Errorf("failed to check availability: %w", err)
		}

		state := "busy"
		if result.Free {
			state = "free"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is %s on %s %s\n", result.Kind, result.ID, state, day, timeRange)
		return nil
	},
}
