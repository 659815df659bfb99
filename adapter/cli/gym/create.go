package gym

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/facilities/application/commands"
)

var createCmd = &cobra.Command{
	Use:   "create <subscription-id> <name>",
	Short: "Create a gym under a subscription",
	Long: `Create a gym and count it against the subscription's gym quota.

Examples:
  gym gym create 550e8400-e29b-41d4-a716-446655440000 "Downtown"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		subID, err := cli.ParseID("subscription", args[0])
		if err != nil {
			return err
		}

		result, err := app.CreateGymHandler.Handle(cmd.Context(), commands.CreateGymCommand{
			ActorID:        app.ActorID,
			SubscriptionID: subID,
			Name:           args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to create gym: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Gym created: %s\n", result.GymID)
		return nil
	},
}
