package subscription

import (
	"fmt"

	"github.com/spf13/cobra"

	subscriptionQueries "github.com/Flinnker/Gym/internal/subscriptions/application/queries"
)

// Cmd is the subscription command group
var Cmd = &cobra.Command{
	Use:     "subscription",
	Aliases: []string{"sub"},
	Short:   "Manage subscriptions",
	Long:    `Create subscriptions, attach gyms to them and inspect their quotas.`,
}

// AdminCmd is the administrator command group
var AdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrators",
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(addGymCmd)
	Cmd.AddCommand(removeGymCmd)
	Cmd.AddCommand(deactivateCmd)

	AdminCmd.AddCommand(adminCreateCmd)
	AdminCmd.AddCommand(assignCmd)
}

func formatUsage(u subscriptionQueries.Usage) string {
	if u.Max < 0 {
		return fmt.Sprintf("%d (unlimited)", u.Used)
	}
	return fmt.Sprintf("%d/%d", u.Used, u.Max)
}
