package service

import "context"

// CliffService defines the interface for interacting with git-cliff.
type CliffService interface {
	// GenerateRange renders the changelog for rangeExpr ("previous..end") into outputPath.
	GenerateRange(ctx context.Context, rangeExpr, outputPath string) error
}

// CommandRunner runs an external program to completion.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}
