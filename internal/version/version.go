// Package version reports build metadata of the hadbit binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolved returns Version, falling back to the module version recorded by
// `go install` when no ldflags were given.
func Resolved() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// Info returns the version with its build metadata.
func Info() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Resolved(), Commit, Date)
}
