package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/compozy/changelog-range/internal/config"
	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// githubRepository is the implementation of the ReleaseRepository interface.
type githubRepository struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubRepository creates a new ReleaseRepository with validation.
func NewGithubRepository(token, owner, repo string) (ReleaseRepository, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubRepository{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// UpsertReleaseNotes updates the release body for tag, or creates the release.
func (r *githubRepository) UpsertReleaseNotes(ctx context.Context, tag, body string) (bool, error) {
	release, resp, err := r.client.Repositories.GetReleaseByTag(ctx, r.owner, r.repo, tag)
	if err != nil && !isNotFound(resp, err) {
		return false, fmt.Errorf("failed to get release %s: %w", tag, err)
	}
	if release != nil && err == nil {
		_, _, err = r.client.Repositories.EditRelease(ctx, r.owner, r.repo, release.GetID(), &github.RepositoryRelease{
			Body: github.Ptr(body),
		})
		if err != nil {
			return false, fmt.Errorf("failed to update release %s: %w", tag, err)
		}
		return false, nil
	}
	_, _, err = r.client.Repositories.CreateRelease(ctx, r.owner, r.repo, &github.RepositoryRelease{
		TagName: github.Ptr(tag),
		Name:    github.Ptr(tag),
		Body:    github.Ptr(body),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create release %s: %w", tag, err)
	}
	return true, nil
}

// IsRetryableGithubError reports whether err is a rate limit or server-side failure.
func IsRetryableGithubError(err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return respErr.Response.StatusCode >= http.StatusInternalServerError
	}
	return false
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var respErr *github.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil &&
		respErr.Response.StatusCode == http.StatusNotFound
}
