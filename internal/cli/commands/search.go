package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/adityachauhan/aira-apiserver/internal/cli/client"
	"github.com/adityachauhan/aira-apiserver/internal/cli/config"
	"github.com/adityachauhan/aira-apiserver/internal/cli/ui"
)

var searchServer string

// searchCmd is the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "run a one-off web search",
	Long: `Run a standalone web search through the Aira API server and print
the answer with its sources. With no argument the query is asked
interactively.`,
	Example: `  # Search with a query argument
  $ airactl search "bitcoin price today"

  # Prompt for the query
  $ airactl search`,
	RunE: runSearch,
}

func init() {
	searchCmd.SilenceUsage = true
	searchCmd.Flags().StringVarP(&searchServer, "server", "s", "", "API server address (overrides config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		prompt := &survey.Input{Message: "Search query:"}
		if err := survey.AskOne(prompt, &query, survey.WithValidator(survey.Required)); err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		query = strings.TrimSpace(query)
	}

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	server := cfg.Server
	if searchServer != "" {
		server = searchServer
	}

	apiClient, err := client.NewAPIClient(server)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := apiClient.Search(ctx, query)
	if err != nil {
		ui.PrintErrorBox("Search failed", err.Error())
		return fmt.Errorf("search failed")
	}

	ui.PrintSearchResult(result.Content, result.Citations)
	return nil
}
