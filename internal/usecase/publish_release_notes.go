package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/compozy/changelog-range/internal/repository"
	"github.com/spf13/afero"
)

// PublishReleaseNotesUseCase copies a generated changelog into the GitHub release of its tag.
type PublishReleaseNotesUseCase struct {
	FsRepo      repository.FileSystemRepository
	ReleaseRepo repository.ReleaseRepository
}

// Execute publishes the changelog at path for r.End. It returns false without
// calling GitHub when the range ends at HEAD.
func (uc *PublishReleaseNotesUseCase) Execute(ctx context.Context, r domain.Range, path string) (bool, error) {
	if r.IsUnreleased() {
		return false, nil
	}
	data, err := afero.ReadFile(uc.FsRepo, path)
	if err != nil {
		return false, fmt.Errorf("failed to read changelog %s: %w", path, err)
	}
	body := strings.TrimSpace(string(data))
	if body == "" {
		return false, fmt.Errorf("changelog %s is empty", path)
	}
	if _, err := uc.ReleaseRepo.UpsertReleaseNotes(ctx, r.End, body); err != nil {
		return false, err
	}
	return true, nil
}
