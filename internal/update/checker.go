// Package update implements the best-effort background version check. It
// never surfaces an error and never affects the primary command's exit code.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/senso-ai/senso-cli/internal/config"
	"github.com/senso-ai/senso-cli/internal/version"
)

const (
	checkInterval  = 24 * time.Hour
	requestTimeout = 5 * time.Second

	latestReleaseURL = "https://api.github.com/repos/senso-ai/senso-cli/releases/latest"

	maxReleaseBody = 1 * 1024 * 1024
)

// Release is the subset of a GitHub release the CLI cares about.
type Release struct {
	TagName string `json:"tag_name"`
	Body    string `json:"body,omitempty"`
}

// Checker performs the cached release lookup.
type Checker struct {
	store   *config.Store
	http    *http.Client
	url     string
	now     func() time.Time
	stderr  io.Writer
	current string
}

// New constructs a Checker for the running binary's version.
func New(store *config.Store) *Checker {
	return &Checker{
		store:   store,
		http:    &http.Client{Timeout: requestTimeout},
		url:     latestReleaseURL,
		now:     time.Now,
		stderr:  os.Stderr,
		current: version.String(),
	}
}

// WithReleaseURL overrides the release feed endpoint.
func (c *Checker) WithReleaseURL(u string) *Checker {
	c.url = u
	return c
}

// WithCurrentVersion overrides the running version.
func (c *Checker) WithCurrentVersion(v string) *Checker {
	c.current = v
	return c
}

// WithClock overrides the time source.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// WithStderr redirects the advisory output.
func (c *Checker) WithStderr(w io.Writer) *Checker {
	c.stderr = w
	return c
}

// Run executes the check. With a cache fresher than 24 hours it decides from
// the cached result alone and makes no network call; otherwise it performs
// one short-timeout lookup and refreshes the cache unconditionally on
// success. Every failure is swallowed.
func (c *Checker) Run(quiet bool) {
	if quiet || config.UpdateCheckSuppressed() {
		return
	}

	cfg := c.store.Read()
	if c.cacheFresh(cfg.LastUpdateCheck) {
		if IsNewer(cfg.LatestVersion, c.current) {
			c.advise(cfg.LatestVersion)
		}
		return
	}

	rel, err := c.LatestRelease(context.Background())
	if err != nil {
		return
	}
	latest := version.Normalize(rel.TagName)

	// Cache even when up to date, to reset the 24-hour window.
	_ = c.store.Update(func(cfg *config.Config) {
		cfg.LastUpdateCheck = c.now().UTC().Format(time.RFC3339)
		cfg.LatestVersion = latest
	})

	if IsNewer(latest, c.current) {
		c.advise(latest)
	}
}

// LatestRelease fetches the newest published release.
func (c *Checker) LatestRelease(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "senso-cli/"+c.current)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReleaseBody))
	if err != nil {
		return nil, err
	}
	var rel Release
	if err := json.Unmarshal(data, &rel); err != nil {
		return nil, fmt.Errorf("decode release feed: %w", err)
	}
	return &rel, nil
}

func (c *Checker) cacheFresh(lastCheck string) bool {
	if lastCheck == "" {
		return false
	}
	t, err := time.Parse(time.RFC3339, lastCheck)
	if err != nil {
		return false
	}
	// Reject timestamps outside a plausible range; far-future clock skew
	// would otherwise pin the cache fresh forever.
	if t.Year() < 2020 || t.Year() > c.now().Year()+1 {
		return false
	}
	return c.now().Sub(t) < checkInterval
}

func (c *Checker) advise(latest string) {
	fmt.Fprintf(c.stderr, "A new version of senso is available: %s → %s\n",
		version.Format(version.Normalize(c.current)), version.Format(latest))
	fmt.Fprintf(c.stderr, "Run \"senso update\" to upgrade.\n")
}

// IsNewer reports whether latest is strictly greater than current under
// semantic-version ordering. Development builds never see advisories.
func IsNewer(latest, current string) bool {
	if latest == "" || current == "" || current == "dev" {
		return false
	}
	lv, err := semver.NewVersion(version.Normalize(latest))
	if err != nil {
		return false
	}
	cv, err := semver.NewVersion(version.Normalize(current))
	if err != nil {
		return false
	}
	return lv.GreaterThan(cv)
}
