package buildinfo

import "fmt"

// These variables are set via -ldflags at build time:
//
//	-X 'github.com/sirajbot/siraj/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/sirajbot/siraj/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/sirajbot/siraj/core/buildinfo.Date=2026-08-01T12:00:00Z'
//
// The defaults identify local dev builds.
var (
	// Version reports the semantic version or tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "local"
	// Date reports the build timestamp in RFC3339 format.
	Date = ""
)

// String renders a one-line human readable build description.
func String() string {
	if Date == "" {
		return fmt.Sprintf("%s (%s)", Version, Commit)
	}
	return fmt.Sprintf("%s (%s, built %s)", Version, Commit, Date)
}
