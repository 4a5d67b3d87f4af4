package orchestrator

import (
	"context"
	"regexp"

	"github.com/stretchr/testify/mock"
)

// Mock for TagRepository
type mockTagRepository struct{ mock.Mock }

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

// Mock for CliffService
type mockCliffService struct{ mock.Mock }

func (m *mockCliffService) GenerateRange(ctx context.Context, rangeExpr, outputPath string) error {
	args := m.Called(ctx, rangeExpr, outputPath)
	return args.Error(0)
}

// Mock for ReleaseRepository
type mockReleaseRepository struct{ mock.Mock }

func (m *mockReleaseRepository) UpsertReleaseNotes(ctx context.Context, tag, body string) (bool, error) {
	args := m.Called(ctx, tag, body)
	return args.Bool(0), args.Error(1)
}

// Mock for Locker
type mockLocker struct{ mock.Mock }

func (m *mockLocker) Lock(ctx context.Context, path string) (func() error, error) {
	args := m.Called(ctx, path)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return func() error {
		m.MethodCalled("Unlock", path)
		return nil
	}, nil
}

func releaseTags() any {
	return mock.MatchedBy(func(p *regexp.Regexp) bool { return p.String() == `^\d+\.\d+\.\d+$` })
}

func seriesTags(expr string) any {
	return mock.MatchedBy(func(p *regexp.Regexp) bool { return p.String() == expr })
}
