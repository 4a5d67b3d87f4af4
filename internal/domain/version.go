package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// ReleaseTagPattern matches the numeric-only tags treated as releases.
	ReleaseTagPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	fullVersionRegex  = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)
	seriesRegex       = regexp.MustCompile(`^(\d+)\.(\d+)$`)
)

// Version wraps semver.Version for release tags and major.minor series.
type Version struct {
	*semver.Version
	raw     string
	partial bool
}

// ParseVersion accepts either a full major.minor.patch triple or a bare major.minor pair.
func ParseVersion(s string) (*Version, error) {
	if m := fullVersionRegex.FindStringSubmatch(s); m != nil {
		return newVersion(s, m[1], m[2], m[3], false)
	}
	if m := seriesRegex.FindStringSubmatch(s); m != nil {
		return newVersion(s, m[1], m[2], "0", true)
	}
	return nil, fmt.Errorf("%w: %q (expected X.Y.Z or X.Y)", ErrInvalidVersion, s)
}

// ParseReleaseVersion accepts only a full major.minor.patch triple.
func ParseReleaseVersion(s string) (*Version, error) {
	m := fullVersionRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %s is not a full semantic version (X.Y.Z)", ErrInvalidVersion, s)
	}
	return newVersion(s, m[1], m[2], m[3], false)
}

func newVersion(raw, major, minor, patch string, partial bool) (*Version, error) {
	parts := make([]uint64, 0, 3)
	for _, p := range []string{major, minor, patch} {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, raw, err)
		}
		parts = append(parts, n)
	}
	return &Version{
		Version: semver.New(parts[0], parts[1], parts[2], "", ""),
		raw:     raw,
		partial: partial,
	}, nil
}

// IsPartial reports whether the version was given as a bare major.minor pair.
func (v *Version) IsPartial() bool {
	return v.partial
}

// MajorMinor returns the first two dot components as given, e.g. "1.2".
func (v *Version) MajorMinor() string {
	parts := strings.SplitN(v.raw, ".", 3)
	return parts[0] + "." + parts[1]
}

// SeriesBefore reports whether (v.major, v.minor) sorts strictly before other's.
// Patch is ignored.
func (v *Version) SeriesBefore(other *Version) bool {
	if v.Major() != other.Major() {
		return v.Major() < other.Major()
	}
	return v.Minor() < other.Minor()
}

// Compare compares two versions.
func (v *Version) Compare(other *Version) int {
	return v.Version.Compare(other.Version)
}

// String returns the version exactly as it was given.
func (v *Version) String() string {
	return v.raw
}

// SortTags orders release tags ascending by version precedence, the way
// `git tag --sort=version:refname` does. Tags that do not parse keep their
// relative order and sort before every parsed tag.
func SortTags(tags []string) {
	parsed := make(map[string]*Version, len(tags))
	for _, t := range tags {
		if v, err := ParseReleaseVersion(t); err == nil {
			parsed[t] = v
		}
	}
	sort.SliceStable(tags, func(i, j int) bool {
		a, b := parsed[tags[i]], parsed[tags[j]]
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		}
		if c := a.Compare(b); c != 0 {
			return c < 0
		}
		return tags[i] < tags[j]
	})
}
