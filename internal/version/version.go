// Package version parses and orders NuGet-style version strings: a dotted
// numeric core of one to four segments, optionally followed by a
// dash-delimited prerelease tag. A release always orders above a prerelease
// of the same numeric core, and prerelease tags compare as dot-separated
// token sequences with numeric tokens ordering below alphanumeric ones.
package version

import (
	"strconv"
	"strings"

	"github.com/dotnetup/dotnetup/internal/errdefs"
)

// Version is a parsed version string. Two versions with different Raw
// strings can still compare equal ("1.2" and "1.2.0.0").
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Revision   uint64
	Prerelease string // empty for release builds
	Raw        string
}

// IsPrerelease reports whether the version carries a prerelease tag.
func (v Version) IsPrerelease() bool { return v.Prerelease != "" }

// Parse splits a version string into its numeric core and optional
// prerelease tag. Missing trailing core segments default to zero; a
// non-numeric core segment or more than four segments is an error.
func Parse(s string) (Version, error) {
	core, prerelease, _ := strings.Cut(s, "-")

	segments := strings.Split(core, ".")
	if len(segments) > 4 {
		return Version{}, errdefs.Newf(errdefs.KindVersionParse,
			"invalid version %q: more than 4 numeric segments", s)
	}

	var nums [4]uint64
	for i, seg := range segments {
		n, err := strconv.ParseUint(seg, 10, 64)
		if err != nil {
			return Version{}, errdefs.Newf(errdefs.KindVersionParse,
				"invalid version %q: segment %q is not a non-negative integer", s, seg)
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Revision:   nums[3],
		Prerelease: prerelease,
		Raw:        s,
	}, nil
}

// Compare returns -1, 0, or +1 as a sorts before, equal to, or after b.
// The numeric core is compared segment by segment; on a tie, a release
// outranks any prerelease, and two prerelease tags are compared token-wise.
func Compare(a, b Version) int {
	if c := compareUint(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareUint(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := compareUint(a.Patch, b.Patch); c != 0 {
		return c
	}
	if c := compareUint(a.Revision, b.Revision); c != 0 {
		return c
	}

	switch {
	case a.Prerelease == "" && b.Prerelease == "":
		return 0
	case a.Prerelease == "":
		return 1 // release > prerelease
	case b.Prerelease == "":
		return -1
	default:
		return comparePrerelease(a.Prerelease, b.Prerelease)
	}
}

// SelectMax parses every candidate, silently dropping unparsable entries,
// and returns the raw string of the maximum version. It fails only when no
// candidate parses at all.
func SelectMax(candidates []string) (string, error) {
	var (
		best  Version
		found bool
	)
	for _, raw := range candidates {
		v, err := Parse(raw)
		if err != nil {
			continue
		}
		if !found || Compare(v, best) > 0 {
			best = v
			found = true
		}
	}
	if !found {
		return "", errdefs.Newf(errdefs.KindVersionParse,
			"no parseable versions among %d candidates", len(candidates))
	}
	return best.Raw, nil
}

// comparePrerelease orders two prerelease tags as dot-separated token
// sequences. A strict prefix orders below the longer sequence.
func comparePrerelease(a, b string) int {
	aTokens := strings.Split(a, ".")
	bTokens := strings.Split(b, ".")

	for i := 0; i < len(aTokens) && i < len(bTokens); i++ {
		if c := comparePrereleaseToken(aTokens[i], bTokens[i]); c != 0 {
			return c
		}
	}
	return compareUint(uint64(len(aTokens)), uint64(len(bTokens)))
}

// comparePrereleaseToken compares a single prerelease token pair. Numeric
// tokens compare numerically and always order below non-numeric tokens;
// non-numeric tokens compare case-insensitively.
func comparePrereleaseToken(a, b string) int {
	an, aErr := strconv.ParseUint(a, 10, 64)
	bn, bErr := strconv.ParseUint(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		return compareUint(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	}
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
