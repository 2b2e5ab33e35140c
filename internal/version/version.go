// Package version carries the build identity shown by wvtool --version.
package version

// These variables are populated by the Go linker at build time (see the
// magefile Build target).
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
