package ingest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileMetadata is the per-file payload sent to the control plane when
// requesting upload authorization. It is derived deterministically from the
// file's bytes and name, and doubles as the correlation key when the server
// response is matched back to local files.
type FileMetadata struct {
	Filename       string `json:"filename"`
	FileSizeBytes  int64  `json:"file_size_bytes"`
	ContentType    string `json:"content_type"`
	ContentHashMD5 string `json:"content_hash_md5"`
	CorrelationID  string `json:"correlation_id,omitempty"`
}

const fallbackContentType = "application/octet-stream"

// mimeByExtension is a fixed lookup table; the content type is a pure
// function of the filename extension, never of the file contents.
var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".json": "application/json",
	".html": "text/html",
	".htm":  "text/html",
	".xml":  "application/xml",
	".rtf":  "application/rtf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ContentTypeFor maps a filename to a MIME type by extension, falling back
// to application/octet-stream for unrecognised extensions.
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := mimeByExtension[ext]; ok {
		return ct
	}
	return fallbackContentType
}

// ExtractMetadata resolves the path, reads the entire file into memory and
// derives its wire metadata. The whole file is buffered; practical file size
// is bounded by available memory.
func ExtractMetadata(path string) (FileMetadata, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return FileMetadata{}, nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return FileMetadata{}, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return FileMetadata{}, nil, fmt.Errorf("read %s: %w", path, err)
	}

	sum := md5.Sum(data)
	meta := FileMetadata{
		Filename:       filepath.Base(abs),
		FileSizeBytes:  info.Size(),
		ContentType:    ContentTypeFor(abs),
		ContentHashMD5: hex.EncodeToString(sum[:]),
	}
	return meta, data, nil
}
