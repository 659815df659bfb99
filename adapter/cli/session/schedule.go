package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/training/application/commands"
)

var size int

var scheduleCmd = &cobra.Command{
	Use:   "schedule <room-id> <trainer-id>",
	Short: "Schedule a training session",
	Long: `Schedule a session in a room with a trainer who works at the room's gym.

The room and the trainer must both be free, the session must fit into the
room and the subscription's daily session quota must not be used up.
Without --size the session offers every spot of the room.

Examples:
  gym session schedule <room-id> <trainer-id> --date 2026-03-02 --start 18:00 --end 19:00
  gym session schedule <room-id> <trainer-id> --date 2026-03-02 --start 07:30 --end 08:15 --size 6`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		roomID, err := cli.ParseID("room", args[0])
		if err != nil {
			return err
		}
		trainerID, err := cli.ParseID("trainer", args[1])
		if err != nil {
			return err
		}
		day, timeRange, err := cli.ParseSlot(date, start, end)
		if err != nil {
			return err
		}

		result, err := app.ScheduleSessionHandler.Handle(cmd.Context(), commands.ScheduleSessionCommand{
			ActorID:     app.ActorID,
			GymRoomID:   roomID,
			TrainerID:   trainerID,
			Date:        day,
			TimeRange:   timeRange,
			SessionSize: size,
		})
		if err != nil {
			return fmt.Errorf("failed to schedule session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Session scheduled: %s (%d spots)\n", result.SessionID, result.SessionSize)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <session-id>",
	Short: "Cancel a session without reservations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("session", args[0])
		if err != nil {
			return err
		}

		err = app.CancelSessionHandler.Handle(cmd.Context(), commands.CancelSessionCommand{
			ActorID:   app.ActorID,
			SessionID: id,
		})
		if err != nil {
			return fmt.Errorf("failed to cancel session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Session canceled: %s\n", id)
		return nil
	},
}

func init() {
	scheduleCmd.Flags().IntVar(&size, "size", 0, "number of spots offered (default: all spots of the room)")
}
