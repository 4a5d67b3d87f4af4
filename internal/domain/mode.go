package domain

import (
	"fmt"
	"strings"
)

// Mode selects how the range end is resolved.
type Mode string

const (
	// ModeStrict requires a full X.Y.Z version whose tag already exists.
	ModeStrict Mode = "strict"
	// ModePrefix also accepts X.Y and resolves the latest X.Y.* tag, falling back to HEAD.
	ModePrefix Mode = "prefix"
)

// ParseMode parses a mode name. An empty name selects ModeStrict.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStrict, "":
		return ModeStrict, nil
	case ModePrefix:
		return ModePrefix, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrInvalidMode, s, ModeStrict, ModePrefix)
	}
}

// ParseVersion validates s according to the mode.
func (m Mode) ParseVersion(s string) (*Version, error) {
	if m == ModePrefix {
		return ParseVersion(s)
	}
	return ParseReleaseVersion(s)
}

func (m Mode) String() string {
	return string(m)
}
