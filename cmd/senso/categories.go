package main

import (
	"net/http"
	"net/url"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

func newCategoriesCommand(store *config.Store) *cobra.Command {
	catCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage knowledge-base categories",
	}

	catCmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List categories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/categories", nil, nil)
		},
	})

	catCmd.AddCommand(&cobra.Command{
		Use:           "get <categoryId>",
		Short:         "Show one category with its topics",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/categories/"+url.PathEscape(args[0]), nil, nil)
		},
	})

	createCmd := &cobra.Command{
		Use:           "create <name>",
		Short:         "Create a category",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			body := map[string]string{"name": args[0]}
			if description != "" {
				body["description"] = description
			}
			return printRequest(cmd, store, http.MethodPost, "/org/categories", body, nil)
		},
	}
	createCmd.Flags().String("description", "", "Category description")
	catCmd.AddCommand(createCmd)

	catCmd.AddCommand(&cobra.Command{
		Use:           "batch <name>...",
		Short:         "Create several categories in one call",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := make([]map[string]string, 0, len(args))
			for _, name := range args {
				categories = append(categories, map[string]string{"name": name})
			}
			return printRequest(cmd, store, http.MethodPost, "/org/categories/batch", map[string]any{"categories": categories}, nil)
		},
	})

	catCmd.AddCommand(&cobra.Command{
		Use:           "delete <categoryId>",
		Short:         "Delete a category",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodDelete, "/org/categories/"+url.PathEscape(args[0]), nil, "Category deleted.")
		},
	})

	return catCmd
}
