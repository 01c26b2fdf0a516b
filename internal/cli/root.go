// Package cli implements the memchat commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rcliao/memchat/internal/chat"
	"github.com/rcliao/memchat/internal/config"
	"github.com/rcliao/memchat/internal/llm"
	"github.com/rcliao/memchat/internal/store"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "memchat",
	Short: "Personal chatbot with long-term memory",
	Long: "A personal assistant that remembers who you are. Chat history and profile\n" +
		"facts live in a local SQLite database; replies come from Ollama or any\n" +
		"OpenAI-compatible API.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MEMCHAT_DB or ~/.memchat/chatbot.db)")
}

func getDBPath(cfg config.Settings) string {
	if dbPath != "" {
		return dbPath
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".memchat", "chatbot.db")
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
}

// openStore loads settings and opens the database. Caller closes the store.
func openStore() (*store.SQLiteStore, config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Settings{}, err
	}
	s, err := store.NewSQLiteStore(getDBPath(cfg))
	if err != nil {
		return nil, config.Settings{}, err
	}
	return s, cfg, nil
}

// openBot wires the full orchestrator including the model backend.
func openBot() (*chat.Bot, *store.SQLiteStore, config.Settings, error) {
	s, cfg, err := openStore()
	if err != nil {
		return nil, nil, config.Settings{}, err
	}
	client, backendErr := llm.NewClient(cfg)
	return chat.New(cfg, s, client, backendErr, newLogger()), s, cfg, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
