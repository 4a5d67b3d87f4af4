package cmd

import (
	"os"

	"github.com/compozy/changelog-range/internal/config"
	"github.com/compozy/changelog-range/internal/logger"
	"github.com/compozy/changelog-range/internal/orchestrator"
	"github.com/compozy/changelog-range/internal/repository"
	"github.com/compozy/changelog-range/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.
type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo      repository.FileSystemRepository
	tagRepo     repository.TagRepository
	releaseRepo repository.ReleaseRepository
	cliffSvc    service.CliffService
	locker      repository.Locker
}

// containerLoader builds the container when a command runs, so commands that
// need no repository (version, help) work anywhere.
type containerLoader func() (*container, error)

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return buildContainer(cfg, log)
}

// buildContainer wires the dependencies for a loaded configuration.
func buildContainer(cfg *config.Config, log *zap.Logger) (*container, error) {
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	tagRepo, err := repository.NewGitRepository(cfg.RepoPath, cfg.GithubToken)
	if err != nil {
		return nil, err
	}

	// GitHub repository is optional; --publish checks the settings before any work
	releaseRepo := repository.NewGithubNoopRepository(cfg.GithubOwner, cfg.GithubRepo)
	if cfg.GithubToken != "" {
		ghRepo, err := repository.NewGithubRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			log.Warn("GitHub settings unusable, release publishing disabled", zap.Error(err))
		} else {
			releaseRepo = ghRepo
		}
	}

	// git-cliff output goes to stderr; stdout is reserved for run output
	runner := service.NewExecRunner(os.Stderr, os.Stderr)
	cliffSvc := service.NewProgressCliffService(
		service.NewCliffService(cfg.CliffArgs(), cfg.CliffTimeout, runner, log),
		os.Stderr,
	)

	return &container{
		cfg:         cfg,
		log:         log,
		fsRepo:      fsRepo,
		tagRepo:     tagRepo,
		releaseRepo: releaseRepo,
		cliffSvc:    cliffSvc,
		locker:      repository.NewFileLocker(),
	}, nil
}

func (c *container) changelogOrchestrator() *orchestrator.ChangelogOrchestrator {
	return orchestrator.NewChangelogOrchestrator(
		c.tagRepo,
		c.releaseRepo,
		c.fsRepo,
		c.cliffSvc,
		c.locker,
		c.log,
	)
}

// InitCommands registers all commands on the root command
func InitCommands() {
	rootCmd.AddCommand(
		NewGenerateCmd(newContainer),
		NewResolveCmd(newContainer),
		newVersionCmd(),
	)
}
