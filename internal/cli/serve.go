package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/memchat/internal/server"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serve the chat API over HTTP (see WEB_HOST and WEB_PORT).",
		Run:   runServe,
	}
	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	bot, s, cfg, err := openBot()
	if err != nil {
		exitErr("start", err)
	}
	defer s.Close()

	addr := fmt.Sprintf("%s:%d", cfg.WebHost, cfg.WebPort)
	if err := server.New(bot, newLogger()).Listen(addr); err != nil {
		exitErr("serve", err)
	}
}
