// Package outbox holds the operator commands for the event outbox.
package outbox

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
)

var limit int

// Cmd is the outbox command group.
var Cmd = &cobra.Command{
	Use:   "outbox",
	Short: "Inspect and requeue domain events awaiting publication",
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Count events not yet published",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		n, err := app.Outbox.CountPending(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pending events: %d\n", n)
		return nil
	},
}

var deadCmd = &cobra.Command{
	Use:   "dead",
	Short: "List dead-lettered events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		msgs, err := app.Outbox.GetDead(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No dead-lettered events.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tROUTING KEY\tRETRIES\tREASON")
		for _, msg := range msgs {
			reason := ""
			if msg.DeadLetterReason != nil {
				reason = *msg.DeadLetterReason
			}
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", msg.ID, msg.RoutingKey, msg.RetryCount, reason)
		}
		return w.Flush()
	},
}

var requeueCmd = &cobra.Command{
	Use:   "requeue <message-id>",
	Short: "Make a dead-lettered event eligible for publishing again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid message ID: %w", err)
		}
		if err := app.Outbox.Requeue(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to requeue message %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Requeued message %d\n", id)
		return nil
	},
}

func init() {
	deadCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of events to list")

	Cmd.AddCommand(pendingCmd)
	Cmd.AddCommand(deadCmd)
	Cmd.AddCommand(requeueCmd)
}
