package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dunc/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dunc/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dunc/internal/version.Date={{.Date}}
)

// Report is the multi-line text `dunc version` prints.
func Report() string {
	return fmt.Sprintf("dunc version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
