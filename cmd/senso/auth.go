package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/senso-ai/senso-cli/internal/api"
	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

func newLoginCommand(store *config.Store) *cobra.Command {
	return &cobra.Command{
		Use:           "login",
		Short:         "Save an API key to the config file (validated against the API)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, store)
		},
	}
}

func newLogoutCommand(store *config.Store) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "Remove stored credentials",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutputFormatter(cmd)
			if err := store.Clear(); err != nil {
				return out.Error("Failed to remove credentials", err)
			}
			return out.Success("Credentials removed.", map[string]any{"path": store.Path()})
		},
	}
}

func newWhoamiCommand(store *config.Store) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show current auth status and organization info",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd, store)
		},
	}
}

func runLogin(cmd *cobra.Command, store *config.Store) error {
	out := newOutputFormatter(cmd)

	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		key, err := promptAPIKey()
		if err != nil {
			return out.Error("Failed to read API key", err)
		}
		apiKey = key
	}
	if apiKey == "" {
		return out.Error("API key is required", nil)
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	baseURL = strings.TrimSpace(baseURL)

	client := api.NewClient(store, api.WithOverrides(apiKey, baseURL))
	org, err := client.OrgMe(cmd.Context())
	if err != nil {
		return out.APIError(err)
	}

	// Login replaces the config wholesale; stale org details from a
	// previous key must not survive.
	cfg := config.Config{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		OrgName:    org.Name,
		OrgID:      org.OrgID,
		OrgSlug:    org.Slug,
		IsFreeTier: org.IsFreeTier,
	}
	if err := store.Write(cfg); err != nil {
		return out.Error("Failed to save config", err)
	}

	return out.Success(
		fmt.Sprintf("Authenticated as %q (%s). Config saved to %s", org.Name, org.OrgID, store.Path()),
		map[string]any{
			"org_id":   org.OrgID,
			"org_name": org.Name,
			"org_slug": org.Slug,
			"path":     store.Path(),
		},
	)
}

func runWhoami(cmd *cobra.Command, store *config.Store) error {
	out := newOutputFormatter(cmd)

	explicit, _ := cmd.Flags().GetString("api-key")
	apiKey := store.APIKey(explicit)
	if apiKey == "" {
		return out.Error(`Not logged in. Run "senso login" to authenticate.`, nil)
	}

	client := newAPIClient(cmd, store)
	org, err := client.OrgMe(cmd.Context())
	if err != nil {
		// Fall back to cached org details when the API is unreachable.
		cfg := store.Read()
		if cfg.OrgName != "" {
			fmt.Fprintf(os.Stderr, "Warning: could not reach API: %s\n", api.FormatError(err))
			if out.jsonMode {
				return out.Print(map[string]any{
					"org_id":   cfg.OrgID,
					"org_name": cfg.OrgName,
					"org_slug": cfg.OrgSlug,
					"cached":   true,
				})
			}
			fmt.Printf("Organization:  %s (cached)\n", cfg.OrgName)
			fmt.Printf("Org ID:        %s\n", cfg.OrgID)
			fmt.Printf("Slug:          %s\n", cfg.OrgSlug)
			return nil
		}
		return out.APIError(err)
	}

	if out.jsonMode {
		return out.Print(map[string]any{
			"org_id":         org.OrgID,
			"org_name":       org.Name,
			"org_slug":       org.Slug,
			"is_free_tier":   org.IsFreeTier,
			"api_key_prefix": keyPrefix(apiKey),
			"config_path":    store.Path(),
		})
	}

	tier := "Paid"
	if org.IsFreeTier {
		tier = "Free"
	}
	fmt.Printf("Organization:  %s\n", org.Name)
	fmt.Printf("Org ID:        %s\n", org.OrgID)
	fmt.Printf("Slug:          %s\n", org.Slug)
	fmt.Printf("Tier:          %s\n", tier)
	fmt.Printf("API Key:       %s\n", keyPrefix(apiKey))
	fmt.Printf("Config:        %s\n", store.Path())
	return nil
}

// promptAPIKey reads the key from the terminal without echo, falling back
// to a plain line read when stdin is not a terminal (piped input).
func promptAPIKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if terminal.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Paste your API key: ")
		key, err := terminal.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(key)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func keyPrefix(apiKey string) string {
	if len(apiKey) <= 8 {
		return apiKey
	}
	return apiKey[:8] + "..."
}
