package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/memchat/internal/chat"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively",
		Long:  "Start an interactive session. /new starts a fresh session, /exit quits.",
		Run:   runChat,
	}
	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	bot, s, _, err := openBot()
	if err != nil {
		exitErr("start", err)
	}
	defer s.Close()

	sessionID := chat.NewSessionID()
	fmt.Println("memchat")
	fmt.Println("Commands: /new (new session), /exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You> ")
		if !scanner.Scan() {
			fmt.Println("\nBye.")
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "/exit", "exit", "quit":
			fmt.Println("Bye.")
			return
		case "/new":
			sessionID = chat.NewSessionID()
			fmt.Println("Started a new session.")
			continue
		}

		reply, err := bot.Chat(cmd.Context(), sessionID, input)
		if err != nil {
			exitErr("chat", err)
		}
		fmt.Printf("Bot> %s\n", reply)
	}
}
