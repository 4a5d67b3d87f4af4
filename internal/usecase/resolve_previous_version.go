package usecase

import (
	"context"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/compozy/changelog-range/internal/repository"
	"go.uber.org/zap"
)

// ResolvePreviousVersionUseCase finds the range start for a changelog.
type ResolvePreviousVersionUseCase struct {
	TagRepo repository.TagRepository
	Logger  *zap.Logger
}

// Execute returns the last release tag, in tag store order, whose major.minor
// series precedes the target's, or domain.FallbackPreviousTag when none does.
// A failed tag listing counts as an empty one.
func (uc *ResolvePreviousVersionUseCase) Execute(ctx context.Context, target *domain.Version) string {
	log := uc.logger()
	tags, err := uc.TagRepo.ListTags(ctx, domain.ReleaseTagPattern)
	if err != nil {
		log.Warn("tag listing failed, treating as no tags", zap.Error(err))
		tags = nil
	}
	previous := ""
	for _, tag := range tags {
		v, err := domain.ParseReleaseVersion(tag)
		if err != nil {
			continue
		}
		if v.SeriesBefore(target) {
			previous = tag
		}
	}
	log.Debug("resolved previous version",
		zap.Int("release_tags", len(tags)),
		zap.String("previous", previous),
	)
	if previous == "" {
		return domain.FallbackPreviousTag
	}
	return previous
}

func (uc *ResolvePreviousVersionUseCase) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}
