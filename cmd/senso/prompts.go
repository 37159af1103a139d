package main

import (
	"net/http"
	"net/url"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

func newPromptsCommand(store *config.Store) *cobra.Command {
	promptsCmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage stored prompts",
	}

	promptsCmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List prompts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/prompts", nil, nil)
		},
	})

	promptsCmd.AddCommand(&cobra.Command{
		Use:           "get <promptId>",
		Short:         "Show one prompt",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/prompts/"+url.PathEscape(args[0]), nil, nil)
		},
	})

	promptsCmd.AddCommand(&cobra.Command{
		Use:           "delete <promptId>",
		Short:         "Delete a prompt",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodDelete, "/org/prompts/"+url.PathEscape(args[0]), nil, "Prompt deleted.")
		},
	})

	return promptsCmd
}
