package platform

import (
	"strings"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

// familyMap normalizes the distribution family strings gopsutil reports.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// NormalizeArch converts GOARCH-style values to the normalized architecture
// names the registries publish for. Both tools ship 64-bit builds only, so
// any 32-bit x86 value is rejected outright rather than mapped to a guess.
func NormalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	case "386", "x86", "i386", "i686":
		return "", errdefs.Newf(errdefs.KindUnsupportedPlatform,
			"unsupported architecture: %s (32-bit); only 64-bit amd64/arm64 builds are published", arch)
	default:
		return "", errdefs.Newf(errdefs.KindUnsupportedPlatform,
			"unsupported architecture: %s", arch)
	}
}

// normalizeDistro lowercases and trims a distro ID or release string.
func normalizeDistro(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapFamily maps a gopsutil family string to a canonical family name.
func mapFamily(family string) string {
	if canonical, ok := familyMap[normalizeDistro(family)]; ok {
		return canonical
	}
	return FamilyUnknown
}
