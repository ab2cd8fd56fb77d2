package platform

import (
	"github.com/dotnetup/dotnetup/internal/errdefs"
)

// RIDAny is the architecture-neutral runtime identifier the NuGet feed
// accepts for platforms without a dedicated payload.
const RIDAny = "any"

// AssetSuffix maps the platform onto the suffix of a netcoredbg release
// asset name ({component}-{suffix}). Published assets:
//
//	netcoredbg-linux-amd64.tar.gz
//	netcoredbg-linux-arm64.tar.gz
//	netcoredbg-osx-amd64.tar.gz
//	netcoredbg-osx-arm64.tar.gz
//	netcoredbg-win64.zip
//
// Windows ARM64 has no dedicated asset; the x64 build is used as a
// documented fallback. There is no generic fallback beyond that: an
// unmapped pair fails closed.
func AssetSuffix(info *Info) (string, error) {
	type key struct{ os, arch string }

	suffixes := map[key]string{
		{"linux", "amd64"}:   "linux-amd64.tar.gz",
		{"linux", "arm64"}:   "linux-arm64.tar.gz",
		{"darwin", "amd64"}:  "osx-amd64.tar.gz",
		{"darwin", "arm64"}:  "osx-arm64.tar.gz",
		{"windows", "amd64"}: "win64.zip",
		{"windows", "arm64"}: "win64.zip", // no native build, x64 fallback
	}

	if suffix, ok := suffixes[key{info.OS, info.Arch}]; ok {
		return suffix, nil
	}
	return "", errdefs.Newf(errdefs.KindUnsupportedPlatform,
		"no release asset published for %s/%s", info.OS, info.Arch)
}

// RuntimeIdentifier maps the platform onto a .NET runtime identifier for
// the package feed. Unlike the release registry, the feed tolerates
// architecture-neutral payloads, so unmapped pairs fall back to RIDAny
// instead of failing.
func RuntimeIdentifier(info *Info) (string, error) {
	// 32-bit x86 never reaches the fallback: there is no usable payload.
	if _, err := NormalizeArch(info.Arch); err != nil {
		return "", err
	}

	type key struct{ os, arch string }

	rids := map[key]string{
		{"linux", "amd64"}:   "linux-x64",
		{"linux", "arm64"}:   "linux-arm64",
		{"darwin", "amd64"}:  "osx-x64",
		{"darwin", "arm64"}:  "osx-arm64",
		{"windows", "amd64"}: "win-x64",
		{"windows", "arm64"}: "win-arm64",
	}

	if rid, ok := rids[key{info.OS, info.Arch}]; ok {
		return rid, nil
	}
	return RIDAny, nil
}
