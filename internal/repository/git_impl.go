package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// gitRepository is the go-git implementation of the TagRepository interface.
type gitRepository struct {
	repo  *git.Repository
	token string
}

// NewGitRepository opens the repository containing path. The token, when set,
// authenticates tag fetches against an HTTPS origin.
func NewGitRepository(path, token string) (TagRepository, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo, token: strings.TrimSpace(token)}, nil
}

// ListTags returns matching tag names in ascending version order.
func (r *gitRepository) ListTags(ctx context.Context, pattern *regexp.Regexp) ([]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer tagRefs.Close()
	var tags []string
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := ref.Name().Short()
		if pattern == nil || pattern.MatchString(name) {
			tags = append(tags, name)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	domain.SortTags(tags)
	return tags, nil
}

// TagExists checks if a tag exists.
func (r *gitRepository) TagExists(_ context.Context, tag string) (bool, error) {
	_, err := r.repo.Tag(tag)
	if errors.Is(err, git.ErrTagNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check tag %s: %w", tag, err)
	}
	return true, nil
}

// FetchTags refreshes local tags from origin.
func (r *gitRepository) FetchTags(ctx context.Context) error {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return fmt.Errorf("failed to get remote: %w", err)
	}
	err = remote.FetchContext(ctx, &git.FetchOptions{
		RefSpecs: []config.RefSpec{
			config.RefSpec("+refs/tags/*:refs/tags/*"),
		},
		Auth: r.getAuth(),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch tags from remote: %w", err)
	}
	return nil
}

// getAuth returns token authentication for HTTPS remotes
func (r *gitRepository) getAuth() transport.AuthMethod {
	if r.token == "" {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: r.token,
	}
}
