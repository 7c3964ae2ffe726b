// Package version provides build-time version information.
//
// Set with -ldflags "-X blockassist/internal/version.Version=v0.2.0 ...".
package version

import "fmt"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("blockassist %s\ncommit: %s\nbuilt: %s", Version, GitCommit, BuildTime)
}

// Template returns the version template for cobra's --version flag.
func Template() string {
	return String() + "\n"
}
