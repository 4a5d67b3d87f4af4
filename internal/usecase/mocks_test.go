package usecase

import (
	"context"
	"regexp"
	"slices"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for TagRepository
type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) ListTags(ctx context.Context, pattern *regexp.Regexp) ([]string, error) {
	args := m.Called(ctx, pattern)
	if tags := args.Get(0); tags != nil {
		return tags.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}

func (m *mockTagRepository) FetchTags(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeTagRepository is an in-memory tag store with the same ordering as the git one.
type fakeTagRepository struct {
	tags []string
}

func (f *fakeTagRepository) ListTags(_ context.Context, pattern *regexp.Regexp) ([]string, error) {
	var out []string
	for _, t := range f.tags {
		if pattern.MatchString(t) {
			out = append(out, t)
		}
	}
	domain.SortTags(out)
	return out, nil
}

func (f *fakeTagRepository) TagExists(_ context.Context, tag string) (bool, error) {
	return slices.Contains(f.tags, tag), nil
}

func (f *fakeTagRepository) FetchTags(context.Context) error {
	return nil
}

// Mock for ReleaseRepository
type mockReleaseRepository struct {
	mock.Mock
}

func (m *mockReleaseRepository) UpsertReleaseNotes(ctx context.Context, tag, body string) (bool, error) {
	args := m.Called(ctx, tag, body)
	return args.Bool(0), args.Error(1)
}

func patternIs(expr string) any {
	return mock.MatchedBy(func(p *regexp.Regexp) bool { return p.String() == expr })
}
