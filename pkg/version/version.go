// Package version carries build metadata injected with -ldflags.
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns a human-friendly version string for CLI output.
func Summary() string {
	if CommitHash == "" || CommitHash == "unknown" {
		return Version
	}
	short := CommitHash
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, short)
}
