package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/adapter/cli"
	"github.com/Flinnker/Gym/internal/training/application/commands"
)

func parseBooking(args []string) (uuid.UUID, uuid.UUID, error) {
	sessionID, err := cli.ParseID("session", args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	participantID, err := cli.ParseID("participant", args[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return sessionID, participantID, nil
}

var reserveCmd = &cobra.Command{
	Use:     "reserve <session-id> <participant-id>",
	Short:   "Reserve a spot for a participant",
	Aliases: []string{"book"},
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		sessionID, participantID, err := parseBooking(args)
		if err != nil {
			return err
		}

		result, err := app.ReserveSpotHandler.Handle(cmd.Context(), commands.ReserveSpotCommand{
			ActorID:       app.ActorID,
			SessionID:     sessionID,
			ParticipantID: participantID,
		})
		if err != nil {
			return fmt.Errorf("failed to reserve spot: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Spot reserved, %d left\n", result.AvailableSpots)
		return nil
	},
}

var cancelReservationCmd = &cobra.Command{
	Use:   "cancel-reservation <session-id> <participant-id>",
	Short: "Cancel a participant's reservation",
	Long: `Cancel a reservation. Reservations can only be canceled up to six
hours before the session starts.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		sessionID, participantID, err := parseBooking(args)
		if err != nil {
			return err
		}

		err = app.CancelReservationHandler.Handle(cmd.Context(), commands.CancelReservationCommand{
			ActorID:       app.ActorID,
			SessionID:     sessionID,
			ParticipantID: participantID,
		})
		if err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Reservation canceled for %s\n", participantID)
		return nil
	},
}
