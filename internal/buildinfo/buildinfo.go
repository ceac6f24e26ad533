// Package buildinfo holds release metadata stamped in at link time with
// -ldflags "-X github.com/aidanlsb/dotadr/internal/buildinfo.Version=...".
package buildinfo

// Empty for local builds; the version command falls back to the module info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
