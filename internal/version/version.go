package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/ludo-technologies/codeguard/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// GetVersion returns the release version, falling back to the module
// version recorded by `go install` when no ldflags were given.
// Reports carry this value in their version field.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetFullVersion returns the version with commit and build date
func GetFullVersion() string {
	return fmt.Sprintf("codeguard %s (commit: %s, built: %s)", GetVersion(), Commit, Date)
}
