package subscription

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/subscriptions/application/commands"
)

var administratorID string

var createCmd = &cobra.Command{
	Use:   "create <free|base|pro>",
	Short: "Create a subscription",
	Long: `Create a subscription of the given tier.

Tiers:
  free  1 gym, 1 room per gym, 4 sessions per room and day
  base  1 gym, 3 rooms per gym, unlimited sessions
  pro   3 gyms, unlimited rooms and sessions

Examples:
  gym subscription create free
  gym subscription create pro --admin 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		adminID := uuid.Nil
		if administratorID != "" {
			if adminID, err = cli.ParseID("administrator", administratorID); err != nil {
				return err
			}
		}

		result, err := app.CreateSubscriptionHandler.Handle(cmd.Context(), commands.CreateSubscriptionCommand{
			ActorID:         app.ActorID,
			Type:            args[0],
			AdministratorID: adminID,
		})
		if err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subscription created: %s\n", result.SubscriptionID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&administratorID, "admin", "", "administrator to assign the subscription to")
}
