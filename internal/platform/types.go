// Package platform detects the running OS and architecture and maps the
// pair onto the identifiers the two tool registries understand: an asset
// name suffix for GitHub releases and a .NET runtime identifier (RID) for
// the NuGet flat container. Detection uses gopsutil for Linux distribution
// details with a graceful fallback when distro detection fails.
package platform

import "context"

// Linux distribution family constants, used to normalize the family strings
// gopsutil reports.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilySUSE    = "suse"
	FamilyArch    = "arch"
	FamilyAlpine  = "alpine"
	FamilyGentoo  = "gentoo"
	FamilyUnknown = "unknown"
)

// Info contains platform detection results.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Arch    string // "amd64", "arm64" (normalized)
	ArchRaw string // original GOARCH value
	Distro  string // distro ID (Linux only, e.g. "ubuntu")
	Family  string // canonical distro family (Linux only)
	Release string // distro version (Linux only, e.g. "22.04")
}

// IsWindows reports whether the platform is Windows.
func (i *Info) IsWindows() bool { return i.OS == "windows" }

// ExecutableName appends the Windows executable extension when needed.
func (i *Info) ExecutableName(base string) string {
	if i.IsWindows() {
		return base + ".exe"
	}
	return base
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
