package subscription

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/subscriptions/application/commands"
)

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <subscription-id>",
	Short: "Deactivate a subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("subscription", args[0])
		if err != nil {
			return err
		}

		err = app.DeactivateSubscriptionHandler.Handle(cmd.Context(), commands.DeactivateSubscriptionCommand{
			ActorID:        app.ActorID,
			SubscriptionID: id,
		})
		if err != nil {
			return fmt.Errorf("failed to deactivate subscription: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subscription deactivated: %s\n", id)
		return nil
	},
}
