package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adityachauhan/aira-apiserver/internal/cli/client"
	"github.com/adityachauhan/aira-apiserver/internal/cli/config"
	"github.com/adityachauhan/aira-apiserver/internal/cli/ui"
)

var pingServer string

// pingCmd checks connectivity with the API server
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "check connectivity with the API server",
	Example: `  # Ping the configured server
  $ airactl ping

  # Ping a specific server
  $ airactl ping -s http://localhost:8080`,
	RunE: runPing,
}

func init() {
	pingCmd.SilenceUsage = true
	pingCmd.Flags().StringVarP(&pingServer, "server", "s", "", "API server address (overrides config)")
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	server := cfg.Server
	if pingServer != "" {
		server = pingServer
	}

	apiClient, err := client.NewAPIClient(server)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiClient.Ping(ctx); err != nil {
		ui.PrintError("server unreachable: %v", err)
		return fmt.Errorf("ping failed")
	}

	ui.PrintSuccess("server %s is reachable", server)
	return nil
}
