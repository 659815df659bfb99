package subscription

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/subscriptions/application/commands"
)

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an administrator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.CreateAdministratorHandler.Handle(cmd.Context(), commands.CreateAdministratorCommand{
			ActorID: app.ActorID,
		})
		if err != nil {
			return fmt.Errorf("failed to create administrator: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Administrator created: %s\n", result.AdministratorID)
		return nil
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <administrator-id> <subscription-id>",
	Short: "Assign a subscription to an administrator",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		adminID, err := cli.ParseID("administrator", args[0])
		if err != nil {
			return err
		}
		subID, err := cli.ParseID("subscription", args[1])
		if err != nil {
			return err
		}

		err = app.AssignSubscriptionHandler.Handle(cmd.Context(), commands.AssignSubscriptionCommand{
			ActorID:         app.ActorID,
			AdministratorID: adminID,
			SubscriptionID:  subID,
		})
		if err != nil {
			return fmt.Errorf("failed to assign subscription: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subscription %s assigned to administrator %s\n", subID, adminID)
		return nil
	},
}
