// Package version holds build information for daybook.
package version

// Version is set at build time with -ldflags "-X .../internal/version.Version=...".
var Version = "development"

// Commit is the git commit hash, set at build time.
var Commit = "unknown"

// String returns the version, suffixed with the commit when known.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}
