package member

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/training/application/commands"
)

// TrainerCmd is the trainer command group
var TrainerCmd = &cobra.Command{
	Use:   "trainer",
	Short: "Manage trainers",
}

// ParticipantCmd is the participant command group
var ParticipantCmd = &cobra.Command{
	Use:   "participant",
	Short: "Manage participants",
}

var trainerCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a trainer",
	Long: `Create a trainer. Use 'gym gym add-trainer' to let the trainer work
at a gym.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CreateTrainerHandler.Handle(cmd.Context(), commands.CreateTrainerCommand{
			ActorID: app.ActorID,
			Name:    args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to create trainer: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Trainer created: %s\n", result.TrainerID)
		return nil
	},
}

var participantCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CreateParticipantHandler.Handle(cmd.Context(), commands.CreateParticipantCommand{
			ActorID: app.ActorID,
			Name:    args[0],
		})
		if err != nil {
			return fmt.Errorf("failed to create participant: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Participant created: %s\n", result.ParticipantID)
		return nil
	},
}

func init() {
	TrainerCmd.AddCommand(trainerCreateCmd)
	ParticipantCmd.AddCommand(participantCreateCmd)
}
