package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRangeEndUseCase_Execute(t *testing.T) {
	t.Run("Should return exact tag when it exists", func(t *testing.T) {
		uc := &ResolveRangeEndUseCase{TagRepo: &fakeTagRepository{tags: []string{"1.0.0", "1.1.0", "1.2.3"}}}
		for _, mode := range []domain.Mode{domain.ModeStrict, domain.ModePrefix} {
			end, err := uc.Execute(context.Background(), mustVersion(t, "1.2.3"), mode)
			require.NoError(t, err)
			assert.Equal(t, "1.2.3", end)
		}
	})
	t.Run("Should fail when exact tag is missing", func(t *testing.T) {
		uc := &ResolveRangeEndUseCase{TagRepo: &fakeTagRepository{}}
		for _, mode := range []domain.Mode{domain.ModeStrict, domain.ModePrefix} {
			end, err := uc.Execute(context.Background(), mustVersion(t, "0.1.0"), mode)
			require.ErrorIs(t, err, domain.ErrTagNotFound)
			assert.Equal(t, "tag 0.1.0 does not exist: tag not found", err.Error())
			assert.Empty(t, end)
		}
	})
	t.Run("Should propagate tag lookup errors", func(t *testing.T) {
		gitRepo := new(mockTagRepository)
		ctx := context.Background()
		gitRepo.On("TagExists", ctx, "1.2.3").Return(false, errors.New("corrupt packfile"))
		uc := &ResolveRangeEndUseCase{TagRepo: gitRepo}
		_, err := uc.Execute(ctx, mustVersion(t, "1.2.3"), domain.ModeStrict)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrTagNotFound)
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should return latest patch of series in prefix mode", func(t *testing.T) {
		uc := &ResolveRangeEndUseCase{TagRepo: &fakeTagRepository{tags: []string{"2.0.0", "2.0.1", "2.1.0"}}}
		end, err := uc.Execute(context.Background(), mustVersion(t, "2.0"), domain.ModePrefix)
		require.NoError(t, err)
		assert.Equal(t, "2.0.1", end)
	})
	t.Run("Should order patches by version not by name", func(t *testing.T) {
		uc := &ResolveRangeEndUseCase{TagRepo: &fakeTagRepository{tags: []string{"2.0.10", "2.0.9", "2.0.1"}}}
		end, err := uc.Execute(context.Background(), mustVersion(t, "2.0"), domain.ModePrefix)
		require.NoError(t, err)
		assert.Equal(t, "2.0.10", end)
	})
	t.Run("Should not match a longer series", func(t *testing.T) {
		uc := &ResolveRangeEndUseCase{TagRepo: &fakeTagRepository{tags: []string{"12.0.3", "2.00.1"}}}
		end, err := uc.Execute(context.Background(), mustVersion(t, "2.0"), domain.ModePrefix)
		require.NoError(t, err)
		assert.Equal(t, domain.HeadRef, end)
	})
	t.Run("Should fall back to HEAD for unreleased series", func(t *testing.T) {
		uc := &ResolveRangeEndUseCase{TagRepo: &fakeTagRepository{}}
		end, err := uc.Execute(context.Background(), mustVersion(t, "3.0"), domain.ModePrefix)
		require.NoError(t, err)
		assert.Equal(t, domain.HeadRef, end)
	})
	t.Run("Should query the series pattern", func(t *testing.T) {
		gitRepo := new(mockTagRepository)
		ctx := context.Background()
		gitRepo.On("ListTags", ctx, patternIs(`^2\.0\.\d+$`)).Return([]string{"2.0.0", "2.0.4"}, nil)
		uc := &ResolveRangeEndUseCase{TagRepo: gitRepo}
		end, err := uc.Execute(ctx, mustVersion(t, "2.0"), domain.ModePrefix)
		require.NoError(t, err)
		assert.Equal(t, "2.0.4", end)
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should reject series in strict mode", func(t *testing.T) {
		gitRepo := new(mockTagRepository)
		uc := &ResolveRangeEndUseCase{TagRepo: gitRepo}
		_, err := uc.Execute(context.Background(), mustVersion(t, "2.0"), domain.ModeStrict)
		require.ErrorIs(t, err, domain.ErrInvalidVersion)
		gitRepo.AssertNotCalled(t, "ListTags")
	})
}
