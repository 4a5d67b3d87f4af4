package domain

import "errors"

var (
	// ErrInvalidVersion is returned when a version argument does not match the accepted format.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidMode is returned for an unknown range-end policy.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrTagNotFound is returned when an exact release tag is missing from the tag store.
	ErrTagNotFound = errors.New("tag not found")
)
