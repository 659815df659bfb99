package gym

import (
	"github.com/spf13/cobra"
)

// Cmd is the gym command group
var Cmd = &cobra.Command{
	Use:   "gym",
	Short: "Manage gyms and their trainers",
}

// RoomCmd is the room command group
var RoomCmd = &cobra.Command{
	Use:   "room",
	Short: "Manage gym rooms",
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(addTrainerCmd)
	Cmd.AddCommand(removeTrainerCmd)

	RoomCmd.AddCommand(roomCreateCmd)
	RoomCmd.AddCommand(roomRemoveCmd)
}
