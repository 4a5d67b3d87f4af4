package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/compozy/changelog-range/internal/config"
	"github.com/compozy/changelog-range/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildContainer(t *testing.T) {
	t.Run("Should fall back to noop publishing for an unusable token", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		cfg := config.DefaultConfig()
		cfg.RepoPath = setupTaggedRepo(t, "1.0.0")
		cfg.GithubToken = "ghp_not-a-valid-token"
		cfg.GithubOwner = "acme"
		cfg.GithubRepo = "widgets"
		c, err := buildContainer(cfg, zap.New(core))
		require.NoError(t, err)
		_, err = c.releaseRepo.UpsertReleaseNotes(context.Background(), "1.0.0", "notes")
		assert.ErrorIs(t, err, repository.ErrGithubTokenRequired)
		assert.Equal(t, 1, logs.FilterMessage("GitHub settings unusable, release publishing disabled").Len())
	})
	t.Run("Should use noop publishing without token", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		cfg := config.DefaultConfig()
		cfg.RepoPath = setupTaggedRepo(t)
		c, err := buildContainer(cfg, zap.New(core))
		require.NoError(t, err)
		_, err = c.releaseRepo.UpsertReleaseNotes(context.Background(), "1.0.0", "notes")
		assert.ErrorIs(t, err, repository.ErrGithubTokenRequired)
		assert.Zero(t, logs.Len())
	})
	t.Run("Should fail outside a git repository", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.RepoPath = t.TempDir()
		_, err := buildContainer(cfg, zap.NewNop())
		require.Error(t, err)
	})
}

func TestGenerateCmd_UnusableTokenWithoutPublish(t *testing.T) {
	load := func() (*container, error) {
		cfg := config.DefaultConfig()
		cfg.RepoPath = setupTaggedRepo(t, "1.0.0", "1.1.0")
		cfg.GithubToken = "ghp_not-a-valid-token"
		return buildContainer(cfg, zap.NewNop())
	}
	cmd := NewGenerateCmd(load)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version", "1.1.0", "--dry-run"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Generating changelog for 1.0.0..1.1.0")
}
