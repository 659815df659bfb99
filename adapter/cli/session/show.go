package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/training/application/queries"
)

var includeCanceled bool

var showCmd = &cobra.Command{
	Use:     "show <session-id>",
	Short:   "Show a session and its participants",
	Aliases: []string{"get"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		id, err := cli.ParseID("session", args[0])
		if err != nil {
			return err
		}

		s, err := app.GetTrainingSessionHandler.Handle(cmd.Context(), queries.GetTrainingSessionQuery{SessionID: id})
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		printSession(cmd.OutOrStdout(), s)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:     "list <room-id>",
	Short:   "List the sessions of a room",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		roomID, err := cli.ParseID("room", args[0])
		if err != nil {
			return err
		}

		sessions, err := app.ListRoomSessionsHandler.Handle(cmd.Context(), queries.ListRoomSessionsQuery{
			GymRoomID:       roomID,
			IncludeCanceled: includeCanceled,
		})
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions.")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(out, "%s  %s %s-%s  %d/%d  %s\n",
				s.ID, s.Date, s.Start, s.End, s.Reserved, s.SessionSize, status(s))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&includeCanceled, "all", "a", false, "include canceled sessions")
}
