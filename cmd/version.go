package cmd

import (
	"fmt"
	"strings"

	"github.com/compozy/changelog-range/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version.Summary())
				return nil
			}
			fmt.Fprintf(out, "Version:\t%s\n", safeValue(version.Version, "dev"))
			fmt.Fprintf(out, "Commit:\t%s\n", safeValue(version.CommitHash, "unknown"))
			fmt.Fprintf(out, "Built:\t%s\n", safeValue(version.BuildDate, "unknown"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version")
	return cmd
}

func safeValue(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
