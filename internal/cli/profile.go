package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/memchat/internal/memory"
	"github.com/rcliao/memchat/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the stored user profile and notes",
		Run:   runProfile,
	}
	RootCmd.AddCommand(cmd)
}

func runProfile(cmd *cobra.Command, args []string) {
	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	repo := memory.NewRepository(s)
	profile, err := repo.ProfileSnapshot(cmd.Context(), model.ProfileKeys)
	if err != nil {
		exitErr("profile", err)
	}
	notes, err := repo.RecentNotes(cmd.Context(), cfg.NotesLimit)
	if err != nil {
		exitErr("notes", err)
	}

	b, _ := json.MarshalIndent(map[string]interface{}{"profile": profile, "notes": notes}, "", "  ")
	fmt.Println(string(b))
}
