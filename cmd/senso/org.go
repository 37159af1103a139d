package main

import (
	"net/http"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

func newOrgCommand(store *config.Store) *cobra.Command {
	orgCmd := &cobra.Command{
		Use:   "org",
		Short: "Organization details",
	}

	orgCmd.AddCommand(&cobra.Command{
		Use:           "get",
		Short:         "Show the authenticated organization",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/me", nil, nil)
		},
	})

	return orgCmd
}

func newMembersCommand(store *config.Store) *cobra.Command {
	membersCmd := &cobra.Command{
		Use:   "members",
		Short: "Organization membership",
	}

	membersCmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List organization members",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRequest(cmd, store, http.MethodGet, "/org/members", nil, nil)
		},
	})

	return membersCmd
}
