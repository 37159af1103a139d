package main

import (
	"net/http"
	"strings"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

func newSearchCommand(store *config.Store) *cobra.Command {
	searchCmd := &cobra.Command{
		Use:           "search <query>",
		Short:         "Search the knowledge base",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, store, "/org/search", args)
		},
	}
	searchCmd.PersistentFlags().Int("max-results", 0, "Maximum number of results")

	searchCmd.AddCommand(&cobra.Command{
		Use:           "context <query>",
		Short:         "Retrieve raw context chunks for a query",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, store, "/org/search/context", args)
		},
	})

	searchCmd.AddCommand(&cobra.Command{
		Use:           "content <query>",
		Short:         "Search content items matching a query",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, store, "/org/search/content", args)
		},
	})

	return searchCmd
}

func runSearch(cmd *cobra.Command, store *config.Store, path string, args []string) error {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	body := searchRequest{
		Query:      strings.Join(args, " "),
		MaxResults: maxResults,
	}
	return printRequest(cmd, store, http.MethodPost, path, body, nil)
}
