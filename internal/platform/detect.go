package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector against the actual host.
type RealDetector struct{}

// NewDetector creates a platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect resolves OS and architecture from the Go runtime and, on Linux,
// adds distribution details via gopsutil. Distro detection failures are
// non-fatal: acquisition only needs OS and arch, the distro fields exist
// for diagnostics.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
	}

	arch, err := NormalizeArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection: %w", err)
	}
	info.Arch = arch

	if runtime.GOOS == "linux" {
		distro, family, release, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		if d := normalizeDistro(distro); d != "" {
			info.Distro = d
			info.Family = mapFamily(family)
			info.Release = normalizeDistro(release)
		}
	}

	return info, nil
}
