package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustVersion(t *testing.T, s string) *domain.Version {
	t.Helper()
	v, err := domain.ParseVersion(s)
	require.NoError(t, err)
	return v
}

func TestResolvePreviousVersionUseCase_Execute(t *testing.T) {
	t.Run("Should return last tag of an earlier series", func(t *testing.T) {
		uc := &ResolvePreviousVersionUseCase{
			TagRepo: &fakeTagRepository{tags: []string{"1.0.0", "1.1.0", "1.2.3"}},
		}
		assert.Equal(t, "1.1.0", uc.Execute(context.Background(), mustVersion(t, "1.2.3")))
	})
	t.Run("Should ignore patch when comparing series", func(t *testing.T) {
		uc := &ResolvePreviousVersionUseCase{
			TagRepo: &fakeTagRepository{tags: []string{"1.1.0", "1.1.4", "1.2.0", "1.2.1"}},
		}
		assert.Equal(t, "1.1.4", uc.Execute(context.Background(), mustVersion(t, "1.2.5")))
	})
	t.Run("Should compare components numerically", func(t *testing.T) {
		uc := &ResolvePreviousVersionUseCase{
			TagRepo: &fakeTagRepository{tags: []string{"1.9.0", "1.9.2", "1.10.0", "1.10.1"}},
		}
		assert.Equal(t, "1.9.2", uc.Execute(context.Background(), mustVersion(t, "1.10")))
	})
	t.Run("Should skip non-release tags", func(t *testing.T) {
		uc := &ResolvePreviousVersionUseCase{
			TagRepo: &fakeTagRepository{tags: []string{"v1.5.0", "1.0.0", "1.4.0-rc.1", "latest"}},
		}
		assert.Equal(t, "1.0.0", uc.Execute(context.Background(), mustVersion(t, "2.0.0")))
	})
	t.Run("Should fall back when no tags exist", func(t *testing.T) {
		uc := &ResolvePreviousVersionUseCase{TagRepo: &fakeTagRepository{}}
		assert.Equal(t, domain.FallbackPreviousTag, uc.Execute(context.Background(), mustVersion(t, "0.1.0")))
	})
	t.Run("Should fall back when only later series exist", func(t *testing.T) {
		uc := &ResolvePreviousVersionUseCase{
			TagRepo: &fakeTagRepository{tags: []string{"0.1.0", "0.1.1", "0.2.0"}},
		}
		assert.Equal(t, domain.FallbackPreviousTag, uc.Execute(context.Background(), mustVersion(t, "0.1.5")))
	})
	t.Run("Should keep store order without re-sorting", func(t *testing.T) {
		gitRepo := new(mockTagRepository)
		ctx := context.Background()
		gitRepo.On("ListTags", ctx, patternIs(domain.ReleaseTagPattern.String())).
			Return([]string{"1.1.0", "1.0.0", "1.0.0"}, nil)
		uc := &ResolvePreviousVersionUseCase{TagRepo: gitRepo}
		assert.Equal(t, "1.0.0", uc.Execute(ctx, mustVersion(t, "2.0.0")))
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should treat listing error as no tags", func(t *testing.T) {
		gitRepo := new(mockTagRepository)
		ctx := context.Background()
		core, logs := observer.New(zapcore.WarnLevel)
		gitRepo.On("ListTags", ctx, patternIs(domain.ReleaseTagPattern.String())).
			Return(nil, errors.New("not a git repository"))
		uc := &ResolvePreviousVersionUseCase{TagRepo: gitRepo, Logger: zap.New(core)}
		assert.Equal(t, domain.FallbackPreviousTag, uc.Execute(ctx, mustVersion(t, "1.2.3")))
		assert.Equal(t, 1, logs.FilterMessage("tag listing failed, treating as no tags").Len())
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should be idempotent for an unchanged store", func(t *testing.T) {
		uc := &ResolvePreviousVersionUseCase{
			TagRepo: &fakeTagRepository{tags: []string{"0.9.0", "1.0.0", "1.0.3"}},
		}
		target := mustVersion(t, "1.1.0")
		first := uc.Execute(context.Background(), target)
		assert.Equal(t, first, uc.Execute(context.Background(), target))
		assert.Equal(t, "1.0.3", first)
	})
}
