package session

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Flinnker/Gym/internal/training/application/queries"
)

// Cmd is the session command group
var Cmd = &cobra.Command{
	Use:   "session",
	Short: "Schedule training sessions and book spots",
	Long: `Schedule training sessions in gym rooms, reserve and cancel spots for
participants, and check who is free when.`,
}

var (
	date  string
	start string
	end   string
)

func init() {
	Cmd.AddCommand(scheduleCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(reserveCmd)
	Cmd.AddCommand(cancelReservationCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(availabilityCmd)

	for _, c := range []*cobra.Command{scheduleCmd, availabilityCmd} {
		c.Flags().StringVar(&date, "date", "", "day of the session (YYYY-MM-DD)")
		c.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
		c.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
		_ = c.MarkFlagRequired("date")
		_ = c.MarkFlagRequired("start")
		_ = c.MarkFlagRequired("end")
	}
}

func status(s queries.TrainingSessionDTO) string {
	switch {
	case s.Canceled:
		return "canceled"
	case s.Ended:
		return "ended"
	case s.AvailableSpots == 0:
		return "full"
	default:
		return "open"
	}
}

func printSession(out io.Writer, s *queries.TrainingSessionDTO) {
	fmt.Fprintf(out, "Session: %s\n", s.ID)
	fmt.Fprintf(out, "  When:     %s %s-%s\n", s.Date, s.Start, s.End)
	fmt.Fprintf(out, "  Room:     %s\n", s.GymRoomID)
	fmt.Fprintf(out, "  Trainer:  %s\n", s.TrainerID)
	fmt.Fprintf(out, "  Spots:    %d/%d reserved\n", s.Reserved, s.SessionSize)
	fmt.Fprintf(out, "  Status:   %s\n", status(*s))
	for _, pid := range s.ParticipantIDs {
		fmt.Fprintf(out, "    - %s\n", pid)
	}
}
