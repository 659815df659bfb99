package subscription

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/subscriptions/application/queries"
)

var showCmd = &cobra.Command{
	Use:     "show <subscription-id>",
	Short:   "Show a subscription and its quota usage",
	Aliases: []string{"get"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("subscription", args[0])
		if err != nil {
			return err
		}

		sub, err := app.GetSubscriptionHandler.Handle(cmd.Context(), queries.GetSubscriptionQuery{SubscriptionID: id})
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Subscription: %s\n", sub.ID)
		fmt.Fprintf(out, "  Tier:     %s (%d)\n", sub.Type, sub.Price)
		fmt.Fprintf(out, "  Active:   %t\n", sub.Active)
		fmt.Fprintf(out, "  Gyms:     %s\n", formatUsage(sub.Gyms))
		fmt.Fprintf(out, "  Rooms:    %s\n", formatUsage(sub.Rooms))
		fmt.Fprintf(out, "  Sessions: %s\n", formatUsage(sub.Sessions))
		for _, gymID := range sub.GymIDs {
			fmt.Fprintf(out, "    - %s\n", gymID)
		}
		return nil
	},
}
