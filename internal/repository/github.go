package repository

import "context"

// ReleaseRepository defines the GitHub Releases operations used to publish changelogs.
type ReleaseRepository interface {
	// UpsertReleaseNotes sets body as the notes of the release for tag, creating the
	// release when none exists. It reports whether a release was created.
	UpsertReleaseNotes(ctx context.Context, tag, body string) (bool, error)
}
