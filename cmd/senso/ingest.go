package main

import (
	"errors"
	"fmt"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/senso-ai/senso-cli/internal/ingest"
	"github.com/spf13/cobra"
)

func newIngestCommand(store *config.Store) *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest local files into the knowledge base",
	}

	uploadCmd := &cobra.Command{
		Use:   "upload [file...]",
		Short: "Upload up to 10 files in one batch",
		Long: `Upload hashes each file, requests upload authorization for the whole
batch, pushes the bytes of every authorized file to object storage, and
reports a per-file outcome. Files the server marks as duplicates or
conflicts are skipped, not failed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, _ := cmd.Flags().GetStringSlice("files")
			paths := append(files, args...)
			return runIngestUpload(cmd, store, paths)
		},
	}
	uploadCmd.Flags().StringSlice("files", nil, "Files to upload (also accepted as positional arguments)")
	ingestCmd.AddCommand(uploadCmd)

	reprocessCmd := &cobra.Command{
		Use:           "reprocess <contentId>",
		Short:         "Replace the payload of an existing content item",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newOutputFormatter(cmd)
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return out.Error("--file is required", nil)
			}
			ing := ingest.New(newAPIClient(cmd, store))
			result, err := ing.Reprocess(cmd.Context(), args[0], file)
			return reportBatch(out, result, err)
		},
	}
	reprocessCmd.Flags().String("file", "", "Replacement file")
	ingestCmd.AddCommand(reprocessCmd)

	return ingestCmd
}

func runIngestUpload(cmd *cobra.Command, store *config.Store, paths []string) error {
	out := newOutputFormatter(cmd)
	if len(paths) == 0 {
		return out.Error("no files given: pass paths as arguments or via --files", nil)
	}

	ing := ingest.New(newAPIClient(cmd, store))
	result, err := ing.UploadBatch(cmd.Context(), paths)
	return reportBatch(out, result, err)
}

// reportBatch prints whatever per-file outcomes exist before reporting an
// error: a failed PUT mid-batch leaves earlier files uploaded on the server,
// and the caller deserves to know which ones.
func reportBatch(out *OutputFormatter, result *ingest.BatchResult, err error) error {
	if result != nil {
		if out.jsonMode {
			if perr := out.Print(result); perr != nil {
				return perr
			}
		} else {
			printBatchPlain(result)
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrNoFiles),
			errors.Is(err, ingest.ErrBatchTooLarge),
			errors.Is(err, ingest.ErrDuplicateFilename):
			return out.Error(err.Error(), nil)
		}
		return out.APIError(err)
	}
	return nil
}

func printBatchPlain(result *ingest.BatchResult) {
	for _, f := range result.Files {
		switch f.Status {
		case ingest.StatusUploaded:
			fmt.Printf("  uploaded  %s (content %s)\n", f.Filename, f.ContentID)
		default:
			line := fmt.Sprintf("  skipped   %s (%s)", f.Filename, f.Status)
			if f.Message != "" {
				line += ": " + f.Message
			}
			fmt.Println(line)
		}
	}
	fmt.Printf("%d uploaded, %d skipped\n", result.Uploaded, result.Skipped)
}
