package main

import (
	"fmt"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/senso-ai/senso-cli/internal/update"
	"github.com/senso-ai/senso-cli/internal/version"
	"github.com/spf13/cobra"
)

func newUpdateCommand(store *config.Store) *cobra.Command {
	return &cobra.Command{
		Use:           "update",
		Short:         "Check for a newer release",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutputFormatter(cmd)

			checker := update.New(store)
			rel, err := checker.LatestRelease(cmd.Context())
			if err != nil {
				return out.Error("Failed to check for updates", err)
			}

			current := version.Normalize(version.String())
			latest := version.Normalize(rel.TagName)
			upToDate := !update.IsNewer(latest, current)

			if out.jsonMode {
				return out.Print(map[string]any{
					"current":    current,
					"latest":     latest,
					"up_to_date": upToDate,
				})
			}

			fmt.Printf("Current version: %s\n", version.Format(current))
			fmt.Printf("Latest release:  %s\n", version.Format(latest))
			if upToDate {
				fmt.Println("You are up to date.")
				return nil
			}
			fmt.Println()
			fmt.Println("A newer release is available. Download it from:")
			fmt.Println("  https://github.com/senso-ai/senso-cli/releases/latest")
			if rel.Body != "" {
				fmt.Println()
				fmt.Println(rel.Body)
			}
			return nil
		},
	}
}
