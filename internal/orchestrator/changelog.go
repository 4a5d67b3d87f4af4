package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/compozy/changelog-range/internal/domain"
	"github.com/compozy/changelog-range/internal/logger"
	"github.com/compozy/changelog-range/internal/repository"
	"github.com/compozy/changelog-range/internal/service"
	"github.com/compozy/changelog-range/internal/usecase"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// ChangelogConfig contains configuration for one changelog run.
type ChangelogConfig struct {
	Version   string
	Mode      string
	OutputDir string
	FetchTags bool // Refresh tags from origin before resolving
	DryRun    bool // Resolve and report the range without running git-cliff
	CIOutput  bool // Print key=value lines instead of progress text
	Publish   bool // Push the generated changelog to the GitHub release of the end tag
}

// ChangelogOrchestrator resolves a version range and renders its changelog.
type ChangelogOrchestrator struct {
	tagRepo     repository.TagRepository
	releaseRepo repository.ReleaseRepository
	fsRepo      repository.FileSystemRepository
	cliffSvc    service.CliffService
	locker      repository.Locker
	logger      *zap.Logger
	out         io.Writer
}

// NewChangelogOrchestrator creates a new changelog orchestrator.
func NewChangelogOrchestrator(
	tagRepo repository.TagRepository,
	releaseRepo repository.ReleaseRepository,
	fsRepo repository.FileSystemRepository,
	cliffSvc service.CliffService,
	locker repository.Locker,
	log *zap.Logger,
) *ChangelogOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChangelogOrchestrator{
		tagRepo:     tagRepo,
		releaseRepo: releaseRepo,
		fsRepo:      fsRepo,
		cliffSvc:    cliffSvc,
		locker:      locker,
		logger:      log,
		out:         os.Stdout,
	}
}

// SetOutput redirects progress output.
func (o *ChangelogOrchestrator) SetOutput(w io.Writer) {
	o.out = w
}

// Execute runs the changelog workflow and returns the resolved range.
func (o *ChangelogOrchestrator) Execute(ctx context.Context, cfg ChangelogConfig) (domain.Range, error) {
	// Input is validated before any tag store or tool access
	mode, err := domain.ParseMode(cfg.Mode)
	if err != nil {
		return domain.Range{}, err
	}
	target, err := mode.ParseVersion(cfg.Version)
	if err != nil {
		return domain.Range{}, err
	}
	if err := ValidateOutputDir(cfg.OutputDir); err != nil {
		return domain.Range{}, fmt.Errorf("invalid output directory: %w", err)
	}
	log, _ := logger.WithRunID(o.logger)
	log = log.With(zap.String("version", target.String()), zap.Stringer("mode", mode))
	if cfg.FetchTags {
		o.fetchTags(ctx, log)
	}
	rng, err := o.resolveRange(ctx, target, mode, log)
	if err != nil {
		return domain.Range{}, err
	}
	output := rng.OutputPath(cfg.OutputDir)
	o.printProgress(cfg.CIOutput, rng, output)
	if cfg.DryRun {
		o.printStatus(cfg.CIOutput, fmt.Sprintf("Dry-run complete, %s was not written", output))
		return rng, nil
	}
	if err := o.generate(ctx, rng, output, log); err != nil {
		return rng, err
	}
	o.printStatus(cfg.CIOutput, fmt.Sprintf("Changelog generated at %s", output))
	if cfg.Publish {
		if err := o.publish(ctx, rng, output, cfg.CIOutput, log); err != nil {
			return rng, fmt.Errorf("failed to publish release notes: %w", err)
		}
	}
	return rng, nil
}

func (o *ChangelogOrchestrator) resolveRange(
	ctx context.Context,
	target *domain.Version,
	mode domain.Mode,
	log *zap.Logger,
) (domain.Range, error) {
	previousUC := &usecase.ResolvePreviousVersionUseCase{TagRepo: o.tagRepo, Logger: log}
	endUC := &usecase.ResolveRangeEndUseCase{TagRepo: o.tagRepo, Logger: log}
	previous := previousUC.Execute(ctx, target)
	end, err := endUC.Execute(ctx, target, mode)
	if err != nil {
		return domain.Range{}, err
	}
	rng := domain.Range{Previous: previous, End: end, MajorMinor: target.MajorMinor()}
	log.Info("resolved changelog range", zap.String("range", rng.Expression()))
	return rng, nil
}

// fetchTags refreshes tags from origin; failure leaves the local tags in use.
func (o *ChangelogOrchestrator) fetchTags(ctx context.Context, log *zap.Logger) {
	backoff := retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := o.tagRepo.FetchTags(ctx); err != nil {
			log.Debug("tag fetch attempt failed", zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		log.Warn("could not fetch tags from origin, using local tags", zap.Error(err))
	}
}

// generate renders the changelog while holding the output lock.
func (o *ChangelogOrchestrator) generate(ctx context.Context, rng domain.Range, output string, log *zap.Logger) error {
	if err := o.fsRepo.MkdirAll(filepath.Dir(output), DirPermissionsDefault); err != nil {
		return fmt.Errorf("failed to create changelog directory: %w", err)
	}
	unlock, err := o.locker.Lock(ctx, output)
	if err != nil {
		return err
	}
	defer func() {
		if unlockErr := unlock(); unlockErr != nil {
			log.Warn("failed to release changelog lock", zap.Error(unlockErr))
		}
	}()
	if err := o.cliffSvc.GenerateRange(ctx, rng.Expression(), output); err != nil {
		return fmt.Errorf("failed to generate changelog for %s: %w", rng.Expression(), err)
	}
	log.Info("changelog written", zap.String("path", output))
	return nil
}

func (o *ChangelogOrchestrator) publish(
	ctx context.Context,
	rng domain.Range,
	output string,
	ciOutput bool,
	log *zap.Logger,
) error {
	uc := &usecase.PublishReleaseNotesUseCase{FsRepo: o.fsRepo, ReleaseRepo: o.releaseRepo}
	var published bool
	backoff := retry.WithMaxRetries(DefaultRetryCount, retry.NewExponential(DefaultRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		published, err = uc.Execute(ctx, rng, output)
		if err != nil && repository.IsRetryableGithubError(err) {
			log.Debug("publish attempt failed", zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return err
	}
	if !published {
		o.printStatus(ciOutput, "Range ends at HEAD, no release to publish")
		return nil
	}
	o.printCIOutput(ciOutput, "published=%s\n", rng.End)
	o.printStatus(ciOutput, fmt.Sprintf("Release notes published for %s", rng.End))
	return nil
}

func (o *ChangelogOrchestrator) printProgress(ciOutput bool, rng domain.Range, output string) {
	o.printCIOutput(ciOutput, "previous=%s\n", rng.Previous)
	o.printCIOutput(ciOutput, "end=%s\n", rng.End)
	o.printCIOutput(ciOutput, "range=%s\n", rng.Expression())
	o.printCIOutput(ciOutput, "major_minor=%s\n", rng.MajorMinor)
	o.printCIOutput(ciOutput, "output=%s\n", output)
	o.printStatus(ciOutput, fmt.Sprintf("Previous version : %s", rng.Previous))
	o.printStatus(ciOutput, fmt.Sprintf("Range end        : %s", rng.End))
	o.printStatus(ciOutput, fmt.Sprintf("Generating changelog for %s", rng.Expression()))
}

// printCIOutput prints output in CI format if enabled
func (o *ChangelogOrchestrator) printCIOutput(ciOutput bool, format string, args ...any) {
	if ciOutput {
		fmt.Fprintf(o.out, format, args...)
	}
}

// printStatus prints status messages when not in CI mode
func (o *ChangelogOrchestrator) printStatus(ciOutput bool, message string) {
	if !ciOutput {
		fmt.Fprintln(o.out, message)
	}
}
