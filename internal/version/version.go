// Package version holds the build information that `rex --version` reports.
package version

// Set at build time with ldflags, for example:
//
//	go build -ldflags "-X github.com/pablasso/rex/internal/version.Version=v1.0.0 -X github.com/pablasso/rex/internal/version.CommitSHA=$(git rev-parse --short HEAD)" ./cmd/rex
var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// CommitSHA is the commit rex was built from.
	CommitSHA = "unknown"

	// BuildDate is when the binary was built.
	BuildDate = "unknown"
)

// String renders the version line shown by rex --version.
func String() string {
	return Version + " (" + CommitSHA + ", built " + BuildDate + ")"
}
