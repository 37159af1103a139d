package main

import (
	"net/url"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/spf13/cobra"
)

// printRequest performs one control-plane call and dumps the payload. Most
// resource commands are exactly this shape.
func printRequest(cmd *cobra.Command, store *config.Store, method, path string, body any, params url.Values) error {
	out := newOutputFormatter(cmd)
	client := newAPIClient(cmd, store)
	raw, err := client.Request(cmd.Context(), method, path, body, params)
	if err != nil {
		return out.APIError(err)
	}
	return out.PrintRaw(raw)
}

// deleteRequest performs a call whose success is usually a bodyless 204 and
// reports a confirmation message instead of an empty payload.
func deleteRequest(cmd *cobra.Command, store *config.Store, method, path string, body any, message string) error {
	out := newOutputFormatter(cmd)
	client := newAPIClient(cmd, store)
	raw, err := client.Request(cmd.Context(), method, path, body, nil)
	if err != nil {
		return out.APIError(err)
	}
	if len(raw) > 0 {
		return out.PrintRaw(raw)
	}
	return out.Success(message, nil)
}
