// Package api implements the authenticated HTTP client for the Senso
// control plane. The client is generic over transport concerns only
// (method, path, headers, timeout); payload shapes live with their callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/senso-ai/senso-cli/internal/version"
)

// requestTimeout bounds every control-plane call. Exceeding it cancels the
// in-flight request.
const requestTimeout = 30 * time.Second

// Client issues authenticated requests against the control plane.
type Client struct {
	store     *config.Store
	http      *http.Client
	apiKey    string
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithOverrides supplies explicit credential overrides (typically from
// command-line flags). Empty strings defer to the usual precedence chain.
func WithOverrides(apiKey, baseURL string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient constructs a Client resolving credentials through the given store.
func NewClient(store *config.Store, opts ...Option) *Client {
	c := &Client{
		store:     store,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: "senso-cli/" + version.String(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Params builds query parameters from a map, dropping empty values.
func Params(kv map[string]string) url.Values {
	params := url.Values{}
	for k, v := range kv {
		if v != "" {
			params.Set(k, v)
		}
	}
	return params
}

// Request performs one authenticated call and returns the raw JSON payload.
// A 204 response yields a nil payload and no error. body, when non-nil, is
// marshalled as the JSON request body.
func (c *Client) Request(ctx context.Context, method, path string, body any, params url.Values) (json.RawMessage, error) {
	apiKey := c.store.APIKey(c.apiKey)
	if apiKey == "" {
		return nil, ErrNotAuthenticated
	}

	target := strings.TrimRight(c.store.BaseURL(c.baseURL), "/") + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("X-API-Key", apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			parsed = string(data)
		}
		return nil, &APIError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       parsed,
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if !json.Valid(data) {
		return nil, &InvalidResponseError{Path: path}
	}
	return json.RawMessage(data), nil
}

// OrgMe describes the authenticated organization, used for credential
// verification during login and whoami.
type OrgMe struct {
	OrgID      string `json:"org_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	IsFreeTier bool   `json:"is_free_tier"`
}

// OrgMe fetches the organization bound to the resolved API key.
func (c *Client) OrgMe(ctx context.Context) (*OrgMe, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/org/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var org OrgMe
	if err := json.Unmarshal(raw, &org); err != nil {
		return nil, &InvalidResponseError{Path: "/org/me"}
	}
	return &org, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
