// Package version holds build-time version information.
// The Git* variables are set via -ldflags at build time.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// GitRelease is the release tag (set via ldflags).
	GitRelease = "dev"
	// GitCommit is the commit hash (set via ldflags).
	GitCommit = "unknown"
	// GitCommitDate is the commit date (set via ldflags).
	GitCommitDate = "unknown"
	// GoInfo is the Go version the binary was built with.
	GoInfo = goVersion()
)

func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// String returns a one-line version summary.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", GitRelease, GitCommit, GitCommitDate)
}
