package gym

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/facilities/application/commands"
)

var spots int

var roomCreateCmd = &cobra.Command{
	Use:   "create <gym-id> <name>",
	Short: "Add a room to a gym",
	Long: `Add a room to a gym, counting it against the subscription's room quota.

Examples:
  gym room create 550e8400-e29b-41d4-a716-446655440000 "Studio A" --spots 12`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		gymID, err := cli.ParseID("gym", args[0])
		if err != nil {
			return err
		}

		result, err := app.CreateGymRoomHandler.Handle(cmd.Context(), commands.CreateGymRoomCommand{
			ActorID:        app.ActorID,
			GymID:          gymID,
			Name:           args[1],
			TotalSpotCount: spots,
		})
		if err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Room created: %s\n", result.GymRoomID)
		return nil
	},
}

var roomRemoveCmd = &cobra.Command{
	Use:     "remove <gym-id> <room-id>",
	Short:   "Remove a room without sessions from a gym",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		gymID, err := cli.ParseID("gym", args[0])
		if err != nil {
			return err
		}
		roomID, err := cli.ParseID("room", args[1])
		if err != nil {
			return err
		}

		err = app.RemoveGymRoomHandler.Handle(cmd.Context(), commands.RemoveGymRoomCommand{
			ActorID:   app.ActorID,
			GymID:     gymID,
			GymRoomID: roomID,
		})
		if err != nil {
			return fmt.Errorf("failed to remove room: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Room removed: %s\n", roomID)
		return nil
	},
}

func init() {
	roomCreateCmd.Flags().IntVarP(&spots, "spots", "s", 10, "number of spots in the room")
}
