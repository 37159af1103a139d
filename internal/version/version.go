package version

import (
	"regexp"
	"strings"
)

// version is stamped at build time via -ldflags "-X .../internal/version.version=x.y.z".
var version = "dev"

// String returns the build version for the current binary.
func String() string {
	return version
}

// ForTesting overrides the version string and returns a cleanup function
// that restores the original value. Must not be called concurrently.
func ForTesting(v string) func() {
	original := version
	version = v
	return func() { version = original }
}

// gitDescribeSuffix matches the trailing "-N-gHASH" added by git describe
// (e.g., "0.3.0-5-gabcdef" → strip "-5-gabcdef").
var gitDescribeSuffix = regexp.MustCompile(`-\d+-g[0-9a-f]+$`)

// Normalize strips the "v" prefix and any git-describe suffix so that
// release tags like "v0.3.0" and build versions like "0.3.0-5-gabcdef"
// compare as equal.
func Normalize(v string) string {
	v = strings.TrimPrefix(v, "v")
	return gitDescribeSuffix.ReplaceAllString(v, "")
}

// Format returns a display-friendly version string. For normal versions it
// ensures a "v" prefix (e.g. "0.3.0" → "v0.3.0"). Special values like "dev"
// and empty strings are returned as-is.
func Format(v string) string {
	if v == "" || v == "dev" {
		return v
	}
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}
