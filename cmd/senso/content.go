package main

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/senso-ai/senso-cli/internal/api"
	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

func newContentCommand(store *config.Store) *cobra.Command {
	contentCmd := &cobra.Command{
		Use:   "content",
		Short: "Manage content items",
	}

	listCmd := &cobra.Command{
		Use:           "list",
		Short:         "List content items",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			search, _ := cmd.Flags().GetString("search")
			sort, _ := cmd.Flags().GetString("sort")
			params := api.Params(map[string]string{
				"search": search,
				"sort":   sort,
			})
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				params.Set("offset", strconv.Itoa(offset))
			}
			return printRequest(cmd, store, http.MethodGet, "/org/content", nil, params)
		},
	}
	listCmd.Flags().Int("limit", 0, "Maximum number of items to return")
	listCmd.Flags().Int("offset", 0, "Number of items to skip")
	listCmd.Flags().String("search", "", "Filter by title substring")
	listCmd.Flags().String("sort", "", "Sort order")
	contentCmd.AddCommand(listCmd)

	contentCmd.AddCommand(&cobra.Command{
		Use:           "get <contentId>",
		Short:         "Show one content item",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, contentPath(args[0]), nil, nil)
		},
	})

	contentCmd.AddCommand(&cobra.Command{
		Use:           "delete <contentId>",
		Short:         "Delete a content item",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodDelete, contentPath(args[0]), nil, "Content deleted.")
		},
	})

	contentCmd.AddCommand(&cobra.Command{
		Use:           "unpublish <contentId>",
		Short:         "Unpublish a content item",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodPost, contentPath(args[0])+"/unpublish", nil, "Content unpublished.")
		},
	})

	contentCmd.AddCommand(&cobra.Command{
		Use:           "verification <contentId>",
		Short:         "Show a content item's verification status",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, contentPath(args[0])+"/verification", nil, nil)
		},
	})

	rejectCmd := &cobra.Command{
		Use:           "reject <contentId>",
		Short:         "Reject a content item during verification",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")
			var body any
			if reason != "" {
				body = map[string]string{"reason": reason}
			}
			return deleteRequest(cmd, store, http.MethodPost, contentPath(args[0])+"/reject", body, "Content rejected.")
		},
	}
	rejectCmd.Flags().String("reason", "", "Reason for rejection")
	contentCmd.AddCommand(rejectCmd)

	contentCmd.AddCommand(&cobra.Command{
		Use:           "restore <contentId>",
		Short:         "Restore a rejected content item",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodPost, contentPath(args[0])+"/restore", nil, "Content restored.")
		},
	})

	contentCmd.AddCommand(&cobra.Command{
		Use:           "owners <contentId>",
		Short:         "List a content item's owners",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, contentPath(args[0])+"/owners", nil, nil)
		},
	})

	setOwnersCmd := &cobra.Command{
		Use:           "set-owners <contentId>",
		Short:         "Replace a content item's owners",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutputFormatter(cmd)
			userIDs, _ := cmd.Flags().GetStringSlice("user-ids")
			if len(userIDs) == 0 {
				return out.Error("--user-ids is required", nil)
			}
			body := map[string]any{"user_ids": userIDs}
			return deleteRequest(cmd, store, http.MethodPut, contentPath(args[0])+"/owners", body, "Owners updated.")
		},
	}
	setOwnersCmd.Flags().StringSlice("user-ids", nil, "Comma-separated user IDs")
	contentCmd.AddCommand(setOwnersCmd)

	contentCmd.AddCommand(&cobra.Command{
		Use:           "remove-owner <contentId> <userId>",
		Short:         "Remove one owner from a content item",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodDelete, contentPath(args[0])+"/owners/"+url.PathEscape(args[1]), nil, "Owner removed.")
		},
	})

	return contentCmd
}

func contentPath(contentID string) string {
	return "/org/content/" + url.PathEscape(contentID)
}
