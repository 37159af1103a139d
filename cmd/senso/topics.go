package main

import (
	"net/http"
	"net/url"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

func newTopicsCommand(store *config.Store) *cobra.Command {
	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "Manage topics within a category",
	}

	topicsCmd.AddCommand(&cobra.Command{
		Use:           "list <categoryId>",
		Short:         "List topics in a category",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, topicsPath(args[0]), nil, nil)
		},
	})

	topicsCmd.AddCommand(&cobra.Command{
		Use:           "add <categoryId> <name>",
		Short:         "Add a topic to a category",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodPost, topicsPath(args[0]), map[string]string{"name": args[1]}, nil)
		},
	})

	topicsCmd.AddCommand(&cobra.Command{
		Use:           "batch <categoryId> <name>...",
		Short:         "Add several topics in one call",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := make([]map[string]string, 0, len(args)-1)
			for _, name := range args[1:] {
				topics = append(topics, map[string]string{"name": name})
			}
			return printRequest(cmd, store, http.MethodPost, topicsPath(args[0])+"/batch", map[string]any{"topics": topics}, nil)
		},
	})

	topicsCmd.AddCommand(&cobra.Command{
		Use:           "remove <categoryId> <topicId>",
		Short:         "Remove a topic from a category",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodDelete, topicsPath(args[0])+"/"+url.PathEscape(args[1]), nil, "Topic removed.")
		},
	})

	return topicsCmd
}

func topicsPath(categoryID string) string {
	return "/org/categories/" + url.PathEscape(categoryID) + "/topics"
}
