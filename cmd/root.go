// ABOUTME: Root command for the collabform CLI
// ABOUTME: Handles global flags, .env loading, and shared wiring

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/collabform/collabform-cli/internal/api"
	"github.com/collabform/collabform-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "collabform",
	Short: "CLI for the CollabForm backend",
	Long: `collabform is a command-line client for the CollabForm collaborative forms backend.

It manages your session, your forms, and form responses, and ships an
interactive TUI (collabform ui) for the full workflow.

Environment Variables:
  COLLABFORM_API_URL  Backend API URL (default: http://localhost:8080)`,
}

// Execute runs the root command
func Execute() error {
	// Optional .env next to the working directory; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides COLLABFORM_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("COLLABFORM_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newSession wires the token store, API client, and session manager.
func newSession() (*session.Session, *api.Client) {
	store := session.NewStore(session.DefaultConfigDir())
	client := api.New(GetAPIURL(), store.Token)
	return session.New(store, client), client
}
