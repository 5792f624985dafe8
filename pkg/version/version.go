// Package version exposes build metadata set through -ldflags.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

//nolint:gochecknoglobals // set at build time via -ldflags "-X".
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the build.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// IsRelease reports whether the build carries a parseable semantic version.
func IsRelease() bool {
	_, err := semver.NewVersion(version)
	return err == nil
}

// UserAgent returns the User-Agent sent to the market-data API. Release
// builds use the canonical version without a leading "v"; other builds
// send the raw version string.
func UserAgent() string {
	if v, err := semver.NewVersion(version); err == nil {
		return fmt.Sprintf("cryptoboard/%s", v.String())
	}
	return fmt.Sprintf("cryptoboard/%s", version)
}
