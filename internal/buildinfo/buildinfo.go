// Package buildinfo carries the version stamp injected at build time:
//
//	go build -ldflags "\
//	  -X 'github.com/m3rciful/moviebot/internal/buildinfo.Version=v0.3.0' \
//	  -X 'github.com/m3rciful/moviebot/internal/buildinfo.Commit=$(git rev-parse --short HEAD)' \
//	  -X 'github.com/m3rciful/moviebot/internal/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)'"
//
// Unstamped binaries report the dev defaults.
package buildinfo

var (
	// Version is the release tag of the build.
	Version = "dev"
	// Commit is the short hash the binary was built from.
	Commit = "local"
	// Date is the RFC3339 build timestamp, empty for dev builds.
	Date = ""
)

// String renders the stamp as "version (commit)".
func String() string {
	return Version + " (" + Commit + ")"
}
