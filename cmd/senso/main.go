// Command senso is the command-line client for the Senso knowledge-base
// API: organizations, users, API keys, categories and topics, content,
// prompts, search, and file ingestion.
package main

import (
	"fmt"
	"os"

	"github.com/senso-ai/senso-cli/internal/api"
	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/senso-ai/senso-cli/internal/update"
	"github.com/senso-ai/senso-cli/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	store, err := config.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd := newRootCommand(store)

	// Background version check: detached, never awaited, never fatal.
	go update.New(store).Run(quietInvocation(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		// Error is already printed by command handlers.
		os.Exit(1)
	}
}

func newRootCommand(store *config.Store) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "senso",
		Short: "Senso CLI — infrastructure for the agentic web",
		Long: `Senso is the command-line client for the Senso knowledge-base API.

Authenticate with "senso login", then manage content, categories, users and
API keys, search the knowledge base, and ingest local files.`,
	}
	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")

	rootCmd.PersistentFlags().String("api-key", "", "Override API key (or set "+config.EnvAPIKey+")")
	rootCmd.PersistentFlags().String("base-url", "", "Override API base URL (or set "+config.EnvBaseURL+")")
	rootCmd.PersistentFlags().String("output", "plain", "Output format: json | plain")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress non-essential output")

	rootCmd.AddCommand(
		newLoginCommand(store),
		newLogoutCommand(store),
		newWhoamiCommand(store),
		newOrgCommand(store),
		newMembersCommand(store),
		newUsersCommand(store),
		newAPIKeysCommand(store),
		newCategoriesCommand(store),
		newTopicsCommand(store),
		newSearchCommand(store),
		newContentCommand(store),
		newPromptsCommand(store),
		newIngestCommand(store),
		newUpdateCommand(store),
	)
	return rootCmd
}

// newAPIClient builds a control-plane client honouring the global flag
// overrides.
func newAPIClient(cmd *cobra.Command, store *config.Store) *api.Client {
	apiKey, _ := cmd.Flags().GetString("api-key")
	baseURL, _ := cmd.Flags().GetString("base-url")
	return api.NewClient(store, api.WithOverrides(apiKey, baseURL))
}

// quietInvocation inspects raw arguments for quiet/json output without
// waiting for cobra to parse: the update check starts before dispatch.
func quietInvocation(args []string) bool {
	for i, arg := range args {
		switch {
		case arg == "--quiet":
			return true
		case arg == "--output=json":
			return true
		case arg == "--output" && i+1 < len(args) && args[i+1] == "json":
			return true
		}
	}
	return false
}
