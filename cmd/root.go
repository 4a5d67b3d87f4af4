package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changelog-range",
	Short: "Generate the changelog of a release series with git-cliff",
	Long: `changelog-range resolves the commit range of a release from the repository's
version tags and renders it with git-cliff into CHANGELOG/CHANGELOG-<major>.<minor>.md.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
