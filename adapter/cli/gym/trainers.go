package gym

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/facilities/application/commands"
)

var addTrainerCmd = &cobra.Command{
	Use:   "add-trainer <gym-id> <trainer-id>",
	Short: "Let a trainer work at a gym",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		gymID, err := cli.ParseID("gym", args[0])
		if err != nil {
			return err
		}
		trainerID, err := cli.ParseID("trainer", args[1])
		if err != nil {
			return err
		}

		err = app.AddTrainerToGymHandler.Handle(cmd.Context(), commands.AddTrainerToGymCommand{
			ActorID:   app.ActorID,
			GymID:     gymID,
			TrainerID: trainerID,
		})
		if err != nil {
			return fmt.Errorf("failed to add trainer: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Trainer %s added to gym %s\n", trainerID, gymID)
		return nil
	},
}

var removeTrainerCmd = &cobra.Command{
	Use:   "remove-trainer <gym-id> <trainer-id>",
	Short: "Remove a trainer from a gym",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		gymID, err := cli.ParseID("gym", args[0])
		if err != nil {
			return err
		}
		trainerID, err := cli.ParseID("trainer", args[1])
		if err != nil {
			return err
		}

		err = app.RemoveTrainerFromGymHandler.Handle(cmd.Context(), commands.RemoveTrainerFromGymCommand{
			ActorID:   app.ActorID,
			GymID:     gymID,
			TrainerID: trainerID,
		})
		if err != nil {
			return fmt.Errorf("failed to remove trainer: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Trainer %s removed from gym %s\n", trainerID, gymID)
		return nil
	},
}
