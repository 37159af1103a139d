package main

import (
	"net/http"
	"net/url"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

func newUsersCommand(store *config.Store) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage organization users",
	}

	usersCmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List users",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/users", nil, nil)
		},
	})

	usersCmd.AddCommand(&cobra.Command{
		Use:           "get <userId>",
		Short:         "Show one user",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/users/"+url.PathEscape(args[0]), nil, nil)
		},
	})

	inviteCmd := &cobra.Command{
		Use:           "invite",
		Short:         "Invite a user to the organization",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutputFormatter(cmd)
			email, _ := cmd.Flags().GetString("email")
			role, _ := cmd.Flags().GetString("role")
			if email == "" {
				return out.Error("--email is required", nil)
			}
			body := map[string]string{"email": email}
			if role != "" {
				body["role"] = role
			}
			return printRequest(cmd, store, http.MethodPost, "/org/users", body, nil)
		},
	}
	inviteCmd.Flags().String("email", "", "Email address to invite")
	inviteCmd.Flags().String("role", "", "Role for the invited user")
	usersCmd.AddCommand(inviteCmd)

	usersCmd.AddCommand(&cobra.Command{
		Use:           "remove <userId>",
		Short:         "Remove a user from the organization",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRequest(cmd, store, http.MethodDelete, "/org/users/"+url.PathEscape(args[0]), nil, "User removed.")
		},
	})

	return usersCmd
}
