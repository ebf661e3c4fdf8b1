// Package buildconfig exposes metadata stamped into the binary at link
// time via -ldflags "-X" overrides.
package buildconfig

var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the release version, or "dev" for source builds.
func Version() string { return version }

// Commit returns the VCS revision the binary was built from.
func Commit() string { return commit }
