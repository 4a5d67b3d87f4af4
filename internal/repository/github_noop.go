package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrGithubTokenRequired is returned by every operation of the noop release repository.
var ErrGithubTokenRequired = errors.New("github token is required for GitHub operations")

type githubNoopRepository struct {
	owner string
	repo  string
}

// NewGithubNoopRepository returns a ReleaseRepository used when no usable token is configured.
func NewGithubNoopRepository(owner, repo string) ReleaseRepository {
	return &githubNoopRepository{owner: owner, repo: repo}
}

func (r *githubNoopRepository) UpsertReleaseNotes(_ context.Context, tag, _ string) (bool, error) {
	return false, r.operationError("publish release notes for " + tag)
}

func (r *githubNoopRepository) operationError(action string) error {
	return fmt.Errorf("%w: unable to %s for %s/%s", ErrGithubTokenRequired, action, r.owner, r.repo)
}
