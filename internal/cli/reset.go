package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset [session-id]",
		Short: "Delete all messages for a session",
		Args:  cobra.ExactArgs(1),
		Run:   runReset,
	}
	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.ClearSession(cmd.Context(), args[0]); err != nil {
		exitErr("reset", err)
	}
	fmt.Println("ok")
}
