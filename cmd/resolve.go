package cmd

import (
	"github.com/compozy/changelog-range/internal/domain"
	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command, a dry run with key=value output.
func NewResolveCmd(load containerLoader) *cobra.Command {
	var flags changelogFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the resolved changelog range without generating it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := domain.ParseVersion(flags.version); err != nil {
				return err
			}
			c, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = c.log.Sync() }()
			cfg := flags.config(cmd, c)
			cfg.DryRun = true
			cfg.CIOutput = true
			orch := c.changelogOrchestrator()
			orch.SetOutput(cmd.OutOrStdout())
			_, err = orch.Execute(cmd.Context(), cfg)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
