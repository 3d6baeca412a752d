// Package version holds build metadata injected at link time.
package version

import "runtime"

// These are set via -ldflags at build time, e.g.:
//
//	go build -ldflags "-X github.com/novelquest/novelquest/version.GitRelease=v0.2.0"
var (
	// GitRelease is the release tag or "dev" for local builds.
	GitRelease = "dev"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the date of that commit.
	GitCommitDate = "unknown"
)

// GoInfo reports the Go toolchain used for the build.
var GoInfo = runtime.Version()
