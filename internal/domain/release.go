package domain

import (
	"fmt"
	"path/filepath"
)

const (
	// FallbackPreviousTag is used as the range start when no earlier series has been released.
	FallbackPreviousTag = "0.1.0"
	// HeadRef ends the range at the current unreleased state.
	HeadRef = "HEAD"
)

// Range holds the resolved commit range for one changelog.
type Range struct {
	Previous   string
	End        string
	MajorMinor string
}

// Expression returns the git range expression "previous..end".
func (r Range) Expression() string {
	return fmt.Sprintf("%s..%s", r.Previous, r.End)
}

// OutputPath returns the changelog file for the range's series inside dir.
func (r Range) OutputPath(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("CHANGELOG-%s.md", r.MajorMinor))
}

// IsUnreleased reports whether the range ends at HEAD rather than a tag.
func (r Range) IsUnreleased() bool {
	return r.End == HeadRef
}
