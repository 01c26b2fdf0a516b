package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/memchat/internal/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List recent notes, newest first",
		Run:   runNotes,
	}
	cmd.Flags().IntP("limit", "l", 0, "Max notes (default: MEMORY_NOTES_LIMIT)")
	RootCmd.AddCommand(cmd)
}

func runNotes(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if limit <= 0 {
		limit = cfg.NotesLimit
	}
	notes, err := memory.NewRepository(s).RecentNotes(cmd.Context(), limit)
	if err != nil {
		exitErr("notes", err)
	}
	if len(notes) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(notes, "", "  ")
	fmt.Println(string(b))
}
