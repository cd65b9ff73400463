package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/plate/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/plate/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/plate/internal/version.Date={{.Date}}
)

// String formats the build information on one line
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
