// Package build provides version and build information for cadupdate.
// This package has no dependencies on other internal packages.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// App reports the version compiled into this binary. It satisfies
// update.VersionProvider.
type App struct{}

// Version returns the ldflags-injected version.
func (App) Version() string {
	return Version
}

// Summary returns a one-line description of the build.
func Summary() string {
	return fmt.Sprintf("cadupdate %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
