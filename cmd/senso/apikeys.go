package main

import (
	"net/http"
	"net/url"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

func newAPIKeysCommand(store *config.Store) *cobra.Command {
	keysCmd := &cobra.Command{
		Use:   "api-keys",
		Short: "Manage API keys",
	}

	keysCmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List API keys",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/api-keys", nil, nil)
		},
	})

	keysCmd.AddCommand(&cobra.Command{
		Use:           "get <keyId>",
		Short:         "Show one API key",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/api-keys/"+url.PathEscape(args[0]), nil, nil)
		},
	})

	createCmd := &cobra.Command{
		Use:           "create",
		Short:         "Create a new API key",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutputFormatter(cmd)
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				return out.Error("--name is required", nil)
			}
			return printRequest(cmd, store, http.MethodPost, "/org/api-keys", map[string]string{"name": name}, nil)
		},
	}
	createCmd.Flags().String("name", "", "Name for the new key")
	keysCmd.AddCommand(createCmd)

	keysCmd.AddCommand(&cobra.Command{
		Use:           "revoke <keyId>",
		Short:         "Revoke an API key without deleting it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodPost, "/org/api-keys/"+url.PathEscape(args[0])+"/revoke", nil, "API key revoked.")
		},
	})

	keysCmd.AddCommand(&cobra.Command{
		Use:           "delete <keyId>",
		Short:         "Delete an API key",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodDelete, "/org/api-keys/"+url.PathEscape(args[0]), nil, "API key deleted.")
		},
	})

	return keysCmd
}
