package cmd

import (
	"github.com/compozy/changelog-range/internal/domain"
	"github.com/compozy/changelog-range/internal/orchestrator"
	"github.com/spf13/cobra"
)

type changelogFlags struct {
	version   string
	mode      string
	outputDir string
	fetchTags bool
}

func (f *changelogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.version, "version", "", "Release version (X.Y.Z, or X.Y in prefix mode)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Range end policy: strict or prefix (default from config)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "Changelog directory (default from config)")
	cmd.Flags().BoolVar(&f.fetchTags, "fetch-tags", false, "Fetch tags from origin before resolving")
	_ = cmd.MarkFlagRequired("version")
}

// config merges the flags over the loaded configuration.
func (f *changelogFlags) config(cmd *cobra.Command, c *container) orchestrator.ChangelogConfig {
	cfg := orchestrator.ChangelogConfig{
		Version:   f.version,
		Mode:      c.cfg.Mode,
		OutputDir: c.cfg.ChangelogDir,
		FetchTags: c.cfg.FetchTags,
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = f.mode
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if cmd.Flags().Changed("fetch-tags") {
		cfg.FetchTags = f.fetchTags
	}
	return cfg
}

// NewGenerateCmd creates the generate command
func NewGenerateCmd(load containerLoader) *cobra.Command {
	var (
		flags    changelogFlags
		dryRun   bool
		ciOutput bool
		publish  bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the changelog for a release",
		Long: `Generate the changelog for a release.

The range starts at the newest release tag of an earlier major.minor series
(0.1.0 when there is none) and ends at:
- strict mode: the tag equal to --version, which must exist
- prefix mode: the newest X.Y.* tag of the series, or HEAD when it has none

The result is written to <output-dir>/CHANGELOG-<major>.<minor>.md.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := domain.ParseVersion(flags.version); err != nil {
				return err
			}
			c, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = c.log.Sync() }()
			if publish {
				if err := c.cfg.ValidateForGitHubOperations(); err != nil {
					return err
				}
			}
			cfg := flags.config(cmd, c)
			cfg.DryRun = dryRun
			cfg.CIOutput = ciOutput
			cfg.Publish = publish
			orch := c.changelogOrchestrator()
			orch.SetOutput(cmd.OutOrStdout())
			_, err = orch.Execute(cmd.Context(), cfg)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve the range without running git-cliff")
	cmd.Flags().BoolVar(&ciOutput, "ci-output", false, "Output in CI-friendly format")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the changelog as the GitHub release notes of the end tag")
	return cmd
}
