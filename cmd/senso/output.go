package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/senso-ai/senso-cli/internal/api"
	"github.com/spf13/cobra"
)

// OutputFormatter handles output in JSON or human-readable format.
type OutputFormatter struct {
	jsonMode bool
}

// newOutputFormatter creates a formatter based on the command's --output flag.
func newOutputFormatter(cmd *cobra.Command) *OutputFormatter {
	format, _ := cmd.Flags().GetString("output")
	return &OutputFormatter{jsonMode: format == "json"}
}

// Print outputs data as indented JSON.
func (f *OutputFormatter) Print(data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

// PrintRaw re-indents and prints a raw API payload. A nil payload (204
// responses) prints nothing.
func (f *OutputFormatter) PrintRaw(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	fmt.Println(buf.String())
	return nil
}

// Success outputs a success message; in JSON mode the message and any extra
// fields form a single JSON document.
func (f *OutputFormatter) Success(message string, data map[string]any) error {
	if f.jsonMode {
		output := map[string]any{
			"success": true,
			"message": message,
		}
		for k, v := range data {
			output[k] = v
		}
		return f.Print(output)
	}
	fmt.Println(message)
	return nil
}

// Error prints a single-line error to stderr and returns an error so the
// command exits non-zero. Commands run with SilenceErrors; this is the one
// place a failure is reported.
func (f *OutputFormatter) Error(message string, err error) error {
	if f.jsonMode {
		output := map[string]any{
			"success": false,
			"error":   message,
		}
		if err != nil {
			output["details"] = err.Error()
		}
		encoded, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(os.Stderr, string(encoded))
	} else {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
	if err == nil {
		return errors.New(message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// APIError reports a request failure using the client error taxonomy's
// human mapping (re-auth hints, connectivity hints, and so on).
func (f *OutputFormatter) APIError(err error) error {
	if f.jsonMode {
		return f.Error(api.FormatError(err), err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", api.FormatError(err))
	return err
}
