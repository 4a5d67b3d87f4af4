package repository

import (
	"context"
	"regexp"
)

// TagRepository defines the tag store queries used to resolve a changelog range.
type TagRepository interface {
	// ListTags returns the tags whose name matches pattern, sorted ascending by version.
	ListTags(ctx context.Context, pattern *regexp.Regexp) ([]string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	FetchTags(ctx context.Context) error
}
