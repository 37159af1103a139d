// Package config owns the senso CLI configuration file and credential
// resolution. A Store is constructed once per process with an explicit file
// path and passed by reference; there is no package-level mutable state.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables recognised by the CLI.
const (
	EnvAPIKey        = "SENSO_API_KEY"
	EnvBaseURL       = "SENSO_BASE_URL"
	EnvNoUpdateCheck = "SENSO_NO_UPDATE_CHECK"
)

// DefaultBaseURL is used when no explicit, environment, or stored base URL
// is available.
const DefaultBaseURL = "https://apiv2.senso.ai/api/v1"

// Config is the on-disk record. Unknown fields in the file are ignored and
// missing fields are treated as absent; there is no schema versioning.
type Config struct {
	APIKey          string `json:"apiKey,omitempty"`
	BaseURL         string `json:"baseUrl,omitempty"`
	OrgName         string `json:"orgName,omitempty"`
	OrgID           string `json:"orgId,omitempty"`
	OrgSlug         string `json:"orgSlug,omitempty"`
	IsFreeTier      bool   `json:"isFreeTier,omitempty"`
	LastUpdateCheck string `json:"lastUpdateCheck,omitempty"`
	LatestVersion   string `json:"latestVersion,omitempty"`
}

// Store reads and writes the configuration file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store bound to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user location of the configuration file,
// e.g. ~/.config/senso/config.json on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config directory: %w", err)
	}
	return filepath.Join(dir, "senso", "config.json"), nil
}

// Default returns a Store bound to DefaultPath.
func Default() (*Store, error) {
	p, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStore(p), nil
}

// Path returns the file location this store operates on.
func (s *Store) Path() string {
	return s.path
}

// Read returns the stored configuration. A missing or unreadable file, or a
// file that fails to parse, yields an empty Config; read failures are never
// an error.
func (s *Store) Read() Config {
	var cfg Config
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Config{}
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// Write persists the configuration wholesale, creating the containing
// directory if needed. The file is 2-space-indented JSON with a trailing
// newline, readable only by the owner.
func (s *Store) Write(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	encoded = append(encoded, '\n')
	if err := os.WriteFile(s.path, encoded, 0o600); err != nil {
		return fmt.Errorf("config: write file: %w", err)
	}
	return nil
}

// Update applies a mutation to the stored configuration and writes it back.
// This is a plain read-modify-write; concurrent invocations race and the
// last writer wins.
func (s *Store) Update(apply func(*Config)) error {
	cfg := s.Read()
	apply(&cfg)
	return s.Write(cfg)
}

// Clear removes the configuration file. A file that does not exist is not
// an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: remove file: %w", err)
	}
	return nil
}

// APIKey resolves the API key: explicit override, then SENSO_API_KEY, then
// the stored value. Returns "" when no key is available.
func (s *Store) APIKey(explicit string) string {
	if key := strings.TrimSpace(explicit); key != "" {
		return key
	}
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}
	return strings.TrimSpace(s.Read().APIKey)
}

// BaseURL resolves the API base URL: explicit override, then SENSO_BASE_URL,
// then the stored value, then DefaultBaseURL. Never returns "".
func (s *Store) BaseURL(explicit string) string {
	if u := strings.TrimSpace(explicit); u != "" {
		return u
	}
	if u := strings.TrimSpace(os.Getenv(EnvBaseURL)); u != "" {
		return u
	}
	if u := strings.TrimSpace(s.Read().BaseURL); u != "" {
		return u
	}
	return DefaultBaseURL
}

// UpdateCheckSuppressed reports whether the background update check is
// disabled via the environment.
func UpdateCheckSuppressed() bool {
	return os.Getenv(EnvNoUpdateCheck) == "1"
}
