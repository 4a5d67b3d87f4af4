package usecase

import (
	"context"
	"fmt"
	"regexp"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/compozy/changelog-range/internal/repository"
	"go.uber.org/zap"
)

// ResolveRangeEndUseCase finds the range end for a changelog.
type ResolveRangeEndUseCase struct {
	TagRepo repository.TagRepository
	Logger  *zap.Logger
}

// Execute resolves the range end for target under mode.
//
// A full X.Y.Z version must already exist as a tag and is returned unchanged.
// In prefix mode an X.Y series resolves to its latest X.Y.* tag, or HEAD when
// the series has no release yet.
func (uc *ResolveRangeEndUseCase) Execute(ctx context.Context, target *domain.Version, mode domain.Mode) (string, error) {
	if !target.IsPartial() {
		return uc.exactTag(ctx, target.String())
	}
	if mode != domain.ModePrefix {
		return "", fmt.Errorf("%w: %s is not a full semantic version (X.Y.Z)", domain.ErrInvalidVersion, target)
	}
	return uc.latestInSeries(ctx, target.String())
}

func (uc *ResolveRangeEndUseCase) exactTag(ctx context.Context, tag string) (string, error) {
	exists, err := uc.TagRepo.TagExists(ctx, tag)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag %s: %w", tag, err)
	}
	if !exists {
		return "", fmt.Errorf("tag %s does not exist: %w", tag, domain.ErrTagNotFound)
	}
	return tag, nil
}

func (uc *ResolveRangeEndUseCase) latestInSeries(ctx context.Context, series string) (string, error) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(series) + `\.\d+$`)
	tags, err := uc.TagRepo.ListTags(ctx, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s: %w", series, err)
	}
	if len(tags) == 0 {
		uc.logger().Debug("no release in series, ending range at HEAD", zap.String("series", series))
		return domain.HeadRef, nil
	}
	return tags[len(tags)-1], nil
}

func (uc *ResolveRangeEndUseCase) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}
