package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *config.Store {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvBaseURL, "")
	return config.NewStore(filepath.Join(t.TempDir(), "config.json"))
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	raw, err := client.Request(context.Background(), http.MethodPost, "/org/search", map[string]string{"query": "q"}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/org/search", gotPath)
	assert.Equal(t, "sk-test", got.Get("X-API-Key"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Contains(t, got.Get("User-Agent"), "senso-cli/")

	_, err = uuid.Parse(got.Get("X-Request-ID"))
	assert.NoError(t, err, "X-Request-ID must be a valid UUID")
}

func TestRequestNoBodyOmitsContentType(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Get("Content-Type"))
}

func TestRequestNotAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the network without an API key")
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("", srv.URL))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRequestQueryParams(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	params := Params(map[string]string{"search": "report", "sort": ""})
	_, err := client.Request(context.Background(), http.MethodGet, "/org/content", nil, params)
	require.NoError(t, err)

	assert.Equal(t, "report", gotQuery.Get("search"))
	assert.False(t, gotQuery.Has("sort"), "empty params must be dropped")
}

func TestRequestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-bad", srv.URL))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid api key", apiErr.Message())
	assert.Equal(t, `Authentication failed. Run "senso login" to update your API key.`, FormatError(err))
}

func TestRequestAPIErrorNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Body)
	assert.Equal(t, "Server error. Try again later.", FormatError(err))
}

func TestRequestNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	raw, err := client.Request(context.Background(), http.MethodDelete, "/org/content/abc", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRequestInvalidResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)

	var invalid *InvalidResponseError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "/org/me", invalid.Path)
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(testStore(t),
		WithOverrides("sk-test", srv.URL),
		WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, "Request timed out. Try again later.", FormatError(err))
}

func TestRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "Could not connect to the Senso API. Check your internet connection.", FormatError(err))
}

func TestOrgMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/org/me", r.URL.Path)
		w.Write([]byte(`{"org_id":"org_1","name":"Acme","slug":"acme","is_free_tier":true}`))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL))
	org, err := client.OrgMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "org_1", org.OrgID)
	assert.Equal(t, "Acme", org.Name)
	assert.Equal(t, "acme", org.Slug)
	assert.True(t, org.IsFreeTier)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(testStore(t), WithOverrides("sk-test", srv.URL+"/"))
	_, err := client.Request(context.Background(), http.MethodGet, "/org/me", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/org/me", gotPath)
}
