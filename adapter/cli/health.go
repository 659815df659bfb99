package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/pkg/observability"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the database, lock store and broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := RequireApp()
			if err != nil {
				return err
			}
			if app.Health == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			health := app.Health.GetOverallHealth(cmd.Context())
			names := make([]string, 0, len(health.Checks))
			for name := range health.Checks {
				names = append(names, name)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s\n", health.Status)
			for _, name := range names {
				result := health.Checks[name]
				if result.Message != "" {
					fmt.Fprintf(out, "  %-10s %s (%s)\n", name, result.Status, result.Message)
				} else {
					fmt.Fprintf(out, "  %-10s %s\n", name, result.Status)
				}
			}

			if health.Status == observability.HealthStatusUnhealthy {
				return fmt.Errorf("unhealthy")
			}
			return nil
		},
	}
}
