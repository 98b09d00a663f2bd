// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders build metadata as "advsearch/<version> (<commit>)".
func String() string {
	return "advsearch/" + Version + " (" + Commit + ")"
}
