package update

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *config.Store {
	t.Helper()
	t.Setenv(config.EnvNoUpdateCheck, "")
	return config.NewStore(filepath.Join(t.TempDir(), "config.json"))
}

func releaseServer(t *testing.T, tag string, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		w.Write([]byte(`{"tag_name":"` + tag + `"}`))
	}))
}

func TestRunAdvisesOnNewerRelease(t *testing.T) {
	store := testStore(t)
	srv := releaseServer(t, "v0.4.0", nil)
	defer srv.Close()

	var stderr bytes.Buffer
	New(store).
		WithReleaseURL(srv.URL).
		WithCurrentVersion("0.3.0").
		WithStderr(&stderr).
		Run(false)

	assert.Contains(t, stderr.String(), "v0.3.0 → v0.4.0")
	assert.Contains(t, stderr.String(), `"senso update"`)

	cfg := store.Read()
	assert.Equal(t, "0.4.0", cfg.LatestVersion)
	assert.NotEmpty(t, cfg.LastUpdateCheck)
}

func TestRunSilentWhenUpToDate(t *testing.T) {
	store := testStore(t)
	srv := releaseServer(t, "v0.3.0", nil)
	defer srv.Close()

	var stderr bytes.Buffer
	New(store).
		WithReleaseURL(srv.URL).
		WithCurrentVersion("0.3.0").
		WithStderr(&stderr).
		Run(false)

	assert.Empty(t, stderr.String())
	// Cache refreshed even when up to date.
	assert.Equal(t, "0.3.0", store.Read().LatestVersion)
}

func TestRunFreshCacheSkipsNetwork(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Write(config.Config{
		LastUpdateCheck: time.Now().UTC().Format(time.RFC3339),
		LatestVersion:   "0.5.0",
	}))

	hits := 0
	srv := releaseServer(t, "v0.6.0", &hits)
	defer srv.Close()

	var stderr bytes.Buffer
	New(store).
		WithReleaseURL(srv.URL).
		WithCurrentVersion("0.3.0").
		WithStderr(&stderr).
		Run(false)

	assert.Equal(t, 0, hits, "fresh cache must not hit the network")
	assert.Contains(t, stderr.String(), "v0.5.0")
}

func TestRunStaleCacheRefetches(t *testing.T) {
	store := testStore(t)
	stale := time.Now().Add(-25 * time.Hour).UTC().Format(time.RFC3339)
	require.NoError(t, store.Write(config.Config{
		LastUpdateCheck: stale,
		LatestVersion:   "0.3.0",
	}))

	hits := 0
	srv := releaseServer(t, "v0.4.0", &hits)
	defer srv.Close()

	var stderr bytes.Buffer
	New(store).
		WithReleaseURL(srv.URL).
		WithCurrentVersion("0.3.0").
		WithStderr(&stderr).
		Run(false)

	assert.Equal(t, 1, hits)
	assert.Contains(t, stderr.String(), "v0.4.0")
	assert.Equal(t, "0.4.0", store.Read().LatestVersion)
}

func TestRunImplausibleCacheTimestamp(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Write(config.Config{
		LastUpdateCheck: "2150-01-01T00:00:00Z",
		LatestVersion:   "0.5.0",
	}))

	hits := 0
	srv := releaseServer(t, "v0.4.0", &hits)
	defer srv.Close()

	New(store).
		WithReleaseURL(srv.URL).
		WithCurrentVersion("0.3.0").
		WithStderr(&bytes.Buffer{}).
		Run(false)

	assert.Equal(t, 1, hits, "far-future timestamp must not pin the cache fresh")
}

func TestRunSuppressed(t *testing.T) {
	store := testStore(t)
	hits := 0
	srv := releaseServer(t, "v9.9.9", &hits)
	defer srv.Close()

	checker := New(store).WithReleaseURL(srv.URL).WithCurrentVersion("0.1.0")

	checker.Run(true)
	assert.Equal(t, 0, hits, "quiet mode suppresses the check")

	t.Setenv(config.EnvNoUpdateCheck, "1")
	checker.Run(false)
	assert.Equal(t, 0, hits, "SENSO_NO_UPDATE_CHECK=1 suppresses the check")
}

func TestRunSwallowsFetchFailure(t *testing.T) {
	store := testStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var stderr bytes.Buffer
	New(store).
		WithReleaseURL(srv.URL).
		WithCurrentVersion("0.3.0").
		WithStderr(&stderr).
		Run(false)

	assert.Empty(t, stderr.String())
	assert.Empty(t, store.Read().LastUpdateCheck, "failed fetch must not touch the cache")
}

func TestIsNewer(t *testing.T) {
	assert.True(t, IsNewer("0.4.0", "0.3.0"))
	assert.True(t, IsNewer("v0.4.0", "0.3.9"))
	assert.False(t, IsNewer("0.3.0", "0.3.0"))
	assert.False(t, IsNewer("0.2.0", "0.3.0"))
	assert.False(t, IsNewer("0.4.0", "dev"))
	assert.False(t, IsNewer("", "0.3.0"))
	assert.False(t, IsNewer("not-a-version", "0.3.0"))
	// Build versions carrying a git-describe suffix compare by base version.
	assert.False(t, IsNewer("0.3.0", "0.3.0-5-gabcdef"))
	assert.True(t, IsNewer("0.4.0", "0.3.0-5-gabcdef"))
}
