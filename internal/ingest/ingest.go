// Package ingest implements the file-ingestion upload pipeline: extract
// metadata for a batch of local files, request presigned upload slots from
// the control plane, push raw bytes to object storage for each slot marked
// ready, and aggregate a per-file outcome.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxBatchFiles caps how many files one upload authorization call may carry.
const MaxBatchFiles = 10

// Statuses the control plane assigns to requested files, plus the
// client-side terminal status recorded after a successful object-storage PUT.
const (
	StatusUploadPending = "upload_pending"
	StatusConflict      = "conflict"
	StatusDuplicate     = "duplicate"
	StatusInvalid       = "invalid"
	StatusUploaded      = "uploaded"
)

// Validation errors, raised before any file or network I/O.
var (
	ErrNoFiles           = errors.New("no files given")
	ErrBatchTooLarge     = errors.New("too many files in one batch")
	ErrDuplicateFilename = errors.New("duplicate filename in batch")
)

// ControlPlane is the slice of the API client the pipeline needs.
type ControlPlane interface {
	Request(ctx context.Context, method, path string, body any, params url.Values) (json.RawMessage, error)
}

// UploadResultItem is the server's verdict for one requested file. Items
// arrive in no guaranteed order; correlation is by correlation_id when the
// server echoes it, by filename otherwise. upload_url is present exactly
// when status is upload_pending.
type UploadResultItem struct {
	ContentID      string `json:"content_id,omitempty"`
	IngestionRunID string `json:"ingestion_run_id,omitempty"`
	Filename       string `json:"filename"`
	Status         string `json:"status"`
	UploadURL      string `json:"upload_url,omitempty"`
	Message        string `json:"message,omitempty"`
	CorrelationID  string `json:"correlation_id,omitempty"`
}

// FileResult is the aggregated per-file outcome reported to the caller.
type FileResult struct {
	Filename       string `json:"filename"`
	Status         string `json:"status"`
	ContentID      string `json:"content_id,omitempty"`
	IngestionRunID string `json:"ingestion_run_id,omitempty"`
	Message        string `json:"message,omitempty"`
}

// BatchResult summarises one upload batch.
type BatchResult struct {
	Uploaded int          `json:"uploaded"`
	Skipped  int          `json:"skipped"`
	Files    []FileResult `json:"files"`
}

type uploadRequest struct {
	Files []FileMetadata `json:"files"`
}

type reprocessRequest struct {
	File FileMetadata `json:"file"`
}

// Ingestor sequences the upload pipeline. The control-plane call goes
// through the authenticated API client; the data-plane PUT goes straight to
// the presigned URL with no additional authentication.
type Ingestor struct {
	api      ControlPlane
	uploader *http.Client
}

// New constructs an Ingestor on top of the given control-plane client.
func New(api ControlPlane) *Ingestor {
	return &Ingestor{
		api: api,
		// No client timeout: large files on slow links can legitimately
		// outlast any fixed deadline. Cancellation comes from ctx.
		uploader: &http.Client{},
	}
}

// WithUploadClient replaces the HTTP client used for object-storage PUTs.
func (ing *Ingestor) WithUploadClient(hc *http.Client) *Ingestor {
	ing.uploader = hc
	return ing
}

type localFile struct {
	meta FileMetadata
	data []byte
}

// UploadBatch runs the full pipeline for up to MaxBatchFiles local paths.
// Validation and extraction failures abort before the control-plane call;
// a control-plane failure aborts before any upload. A PUT failure aborts the
// batch, but files already pushed stay uploaded on the server — the partial
// BatchResult returned alongside the error records them.
func (ing *Ingestor) UploadBatch(ctx context.Context, paths []string) (*BatchResult, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	if len(paths) > MaxBatchFiles {
		return nil, fmt.Errorf("%w: got %d, maximum is %d", ErrBatchTooLarge, len(paths), MaxBatchFiles)
	}
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFilename, name)
		}
		seen[name] = struct{}{}
	}

	files := make([]localFile, 0, len(paths))
	metas := make([]FileMetadata, 0, len(paths))
	for _, p := range paths {
		meta, data, err := ExtractMetadata(p)
		if err != nil {
			return nil, err
		}
		meta.CorrelationID = uuid.NewString()
		files = append(files, localFile{meta: meta, data: data})
		metas = append(metas, meta)
	}

	raw, err := ing.api.Request(ctx, http.MethodPost, "/org/ingestion/upload", uploadRequest{Files: metas}, nil)
	if err != nil {
		return nil, err
	}

	items, err := decodeResultItems(raw)
	if err != nil {
		return nil, err
	}
	return ing.processItems(ctx, files, items)
}

// Reprocess runs the same pipeline for exactly one file, replacing the
// payload of an existing content item.
func (ing *Ingestor) Reprocess(ctx context.Context, contentID, path string) (*BatchResult, error) {
	if strings.TrimSpace(contentID) == "" {
		return nil, errors.New("content ID is required")
	}

	meta, data, err := ExtractMetadata(path)
	if err != nil {
		return nil, err
	}
	meta.CorrelationID = uuid.NewString()

	raw, err := ing.api.Request(ctx, http.MethodPut, "/org/ingestion/content/"+url.PathEscape(contentID), reprocessRequest{File: meta}, nil)
	if err != nil {
		return nil, err
	}

	items, err := decodeResultItems(raw)
	if err != nil {
		return nil, err
	}
	return ing.processItems(ctx, []localFile{{meta: meta, data: data}}, items)
}

func decodeResultItems(raw json.RawMessage) ([]UploadResultItem, error) {
	var items []UploadResultItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode upload authorization response: %w", err)
	}
	return items, nil
}

func (ing *Ingestor) processItems(ctx context.Context, files []localFile, items []UploadResultItem) (*BatchResult, error) {
	result := &BatchResult{Files: make([]FileResult, 0, len(items))}
	for _, item := range items {
		if item.Status == StatusUploadPending && item.UploadURL != "" {
			f, ok := matchLocal(files, item)
			if !ok {
				return result, fmt.Errorf("server authorized upload for %q but no such file was requested", item.Filename)
			}
			if err := ing.put(ctx, item.UploadURL, f.meta.ContentType, f.data); err != nil {
				return result, fmt.Errorf("upload %s: %w", f.meta.Filename, err)
			}
			result.Uploaded++
			result.Files = append(result.Files, FileResult{
				Filename:       f.meta.Filename,
				Status:         StatusUploaded,
				ContentID:      item.ContentID,
				IngestionRunID: item.IngestionRunID,
			})
			continue
		}

		result.Skipped++
		result.Files = append(result.Files, FileResult{
			Filename:  item.Filename,
			Status:    item.Status,
			ContentID: item.ContentID,
			Message:   item.Message,
		})
	}
	return result, nil
}

// matchLocal locates the requested file an item refers to, preferring the
// echoed correlation ID over the filename.
func matchLocal(files []localFile, item UploadResultItem) (localFile, bool) {
	if item.CorrelationID != "" {
		for _, f := range files {
			if f.meta.CorrelationID == item.CorrelationID {
				return f, true
			}
		}
	}
	for _, f := range files {
		if f.meta.Filename == item.Filename {
			return f, true
		}
	}
	return localFile{}, false
}

// put pushes raw bytes to a presigned URL. Any 2xx status is success.
func (ing *Ingestor) put(ctx context.Context, uploadURL, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := ing.uploader.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("object storage returned %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return nil
}
