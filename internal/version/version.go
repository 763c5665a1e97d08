// Package version carries build-time metadata injected via -ldflags, the
// same mechanism the teacher's build command uses.
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// GetAbout renders a short multi-line banner for the CLI's about command.
func GetAbout() string {
	return fmt.Sprintf("subtrellis %s\ncommit: %s\nbuilt:  %s", Version, Commit, BuildDate)
}
