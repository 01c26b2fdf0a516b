package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search stored memory values",
		Long:  "Substring search across all stored fact values, newest match first.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}
	cmd.Flags().IntP("limit", "l", 5, "Max results")
	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.SearchFacts(cmd.Context(), query, limit)
	if err != nil {
		exitErr("search", err)
	}
	if len(results) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}
