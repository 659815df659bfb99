package gym

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/facilities/application/queries"
)

var showCmd = &cobra.Command{
	Use:     "show <gym-id>",
	Short:   "Show a gym with its rooms and trainers",
	Aliases: []string{"get"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("gym", args[0])
		if err != nil {
			return err
		}

		gym, err := app.GetGymHandler.Handle(cmd.Context(), queries.GetGymQuery{GymID: id})
		if err != nil {
			return fmt.Errorf("failed to get gym: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Gym: %s\n", gym.ID)
		fmt.Fprintf(out, "  Name:         %s\n", gym.Name)
		fmt.Fprintf(out, "  Subscription: %s (%s)\n", gym.SubscriptionID, gym.SubscriptionType)
		fmt.Fprintf(out, "  Rooms:        %s\n", limit(len(gym.Rooms), gym.MaxRoomCount))
		for _, room := range gym.Rooms {
			fmt.Fprintf(out, "    - %s %-16s spots %d/%d  sessions %s\n",
				room.ID, room.Name, room.AvailableSpotCount, room.TotalSpotCount,
				limit(room.SessionCount, room.MaxDailySessions))
		}
		fmt.Fprintf(out, "  Trainers:     %d\n", len(gym.TrainerIDs))
		for _, trainerID := range gym.TrainerIDs {
			fmt.Fprintf(out, "    - %s\n", trainerID)
		}
		fmt.Fprintln(out, strings.Repeat("-", 40))
		return nil
	},
}

func limit(used, maximum int) string {
	if maximum < 0 {
		return fmt.Sprintf("%d", used)
	}
	return fmt.Sprintf("%d/%d", used, maximum)
}
