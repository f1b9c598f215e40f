// Package version holds build metadata injected via ldflags.
package version

var (
	// Version is the release version, e.g. v0.3.1.
	Version = "dev"
	// Commit is the short git commit hash.
	Commit = "none"
)
