package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adityachauhan/aira-apiserver/internal/cli/client"
	"github.com/adityachauhan/aira-apiserver/internal/cli/config"
	"github.com/adityachauhan/aira-apiserver/internal/cli/tui"
	"github.com/adityachauhan/aira-apiserver/internal/cli/ui"
)

var (
	chatServer    string
	chatWebSearch bool
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "start interactive chat with Aira",
	Long: `Start an interactive chat session with Aira.

Replies stream in as they are generated. The full conversation is sent
with each turn, so follow-up questions keep their context. Questions
about current events trigger a web search automatically; Ctrl+S forces
it on for every message.`,
	Example: `  # Start interactive chat
  $ airactl chat

  # Force web search for every message
  $ airactl chat --web-search

  # Keyboard controls:
  • Enter sends the message
  • Ctrl+S toggles web search
  • Esc quits the session`,
	RunE: runChat,
}

func init() {
	chatCmd.SilenceUsage = true
	chatCmd.Flags().StringVarP(&chatServer, "server", "s", "", "API server address (overrides config)")
	chatCmd.Flags().BoolVar(&chatWebSearch, "web-search", false, "force web search for every message")
}

func runChat(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Println("\nRun 'airactl chat' to start interactive session.")
		return fmt.Errorf("invalid arguments")
	}

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	server := cfg.Server
	if chatServer != "" {
		server = chatServer
	}

	apiClient, err := client.NewAPIClient(server)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	webSearch := cfg.WebSearch || chatWebSearch
	program := tui.NewChatProgram(apiClient, webSearch)
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}

	return nil
}
