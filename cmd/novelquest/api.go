package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/novelquest/novelquest/internal/api"
	"github.com/novelquest/novelquest/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running NovelQuest server via HTTP.

These commands require a running server (novelquest serve).
Use --server to specify a custom server URL.

Examples:
  novelquest api health                      # Check server health
  novelquest api recommend "cozy mystery"    # Get recommendations
  novelquest api session get <id>            # Show session history`,
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Session management commands",
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Favorites management commands",
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the server to be ready",
	Long: `Wait for the server to respond to health checks.

This is useful in scripts to ensure the server is fully started
before running other commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		fmt.Printf("Waiting for server (timeout: %s)...\n", timeout)

		client := api.NewClient(getServerURL())
		if err := client.WaitHealthy(cmd.Context(), timeout); err != nil {
			return fmt.Errorf("server not ready: %w", err)
		}

		fmt.Println("Server is ready")
		return nil
	},
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	waitCmd.Flags().Duration("timeout", 30*time.Second, "Timeout waiting for the server")
	apiCmd.AddCommand(waitCmd)

	// Health, provider, and recommendation endpoints at top level of api
	topLevel := api.NewRegistry()
	topLevel.Register(&endpoints.HealthEndpoint{})
	topLevel.Register(&endpoints.StatusEndpoint{})
	topLevel.Register(&endpoints.ProvidersEndpoint{})
	topLevel.Register(&endpoints.RecommendEndpoint{})
	topLevel.AddCommands(apiCmd, getServerURL)

	// Sessions as subcommand group
	for _, ep := range endpoints.SessionCommands() {
		sessionCmd.AddCommand(ep.Command(getServerURL))
	}

	// Favorites as subcommand group
	for _, ep := range endpoints.FavoriteCommands() {
		favoritesCmd.AddCommand(ep.Command(getServerURL))
	}

	// Swagger spec fetch
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(sessionCmd)
	apiCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(apiCmd)
}
