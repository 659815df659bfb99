package subscription

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/subscriptions/application/commands"
)

var addGymCmd = &cobra.Command{
	Use:   "add-gym <subscription-id> <gym-id>",
	Short: "Count an existing gym against a subscription",
	Long: `Count a gym against the subscription's gym quota.

'gym create' already does this for new gyms.`,
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
		gymID, err := cli.ParseID("gym", args[1])
		if err != nil {
			return err
		}

		err = app.AddGymToSubscriptionHandler.Handle(cmd.Context(), commands.AddGymToSubscriptionCommand{
			ActorID:        app.ActorID,
			SubscriptionID: subID,
			GymID:          gymID,
		})
		if err != nil {
			return fmt.Errorf("failed to add gym: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Gym %s added to subscription %s\n", gymID, subID)
		return nil
	},
}

var removeGymCmd = &cobra.Command{
	Use:   "remove-gym <subscription-id> <gym-id>",
	Short: "Release a gym from a subscription",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		subID, err := cli.ParseID("subscription", args[0])
		if err != nil {
			return err
		}
		gymID, err := cli.ParseID("gym", args[1])
		if err != nil {
			return err
		}

		err = app.RemoveGymFromSubscriptionHandler.Handle(cmd.Context(), commands.RemoveGymFromSubscriptionCommand{
			ActorID:        app.ActorID,
			SubscriptionID: subID,
			GymID:          gymID,
		})
		if err != nil {
			return fmt.Errorf("failed to remove gym: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Gym %s removed from subscription %s\n", gymID, subID)
		return nil
	},
}
