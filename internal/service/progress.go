package service

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

const spinnerInterval = 100 * time.Millisecond

// progressCliffService shows a spinner on an interactive terminal while git-cliff runs.
type progressCliffService struct {
	inner CliffService
	out   io.Writer
}

// NewProgressCliffService wraps inner with a spinner written to out. When out is
// not a terminal inner is returned unchanged.
func NewProgressCliffService(inner CliffService, out *os.File) CliffService {
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return inner
	}
	return &progressCliffService{inner: inner, out: out}
}

func (s *progressCliffService) GenerateRange(ctx context.Context, rangeExpr, outputPath string) error {
	sp := spinner.New(spinner.CharSets[14], spinnerInterval, spinner.WithWriter(s.out))
	sp.Suffix = " git-cliff " + rangeExpr
	sp.Start()
	defer sp.Stop()
	return s.inner.GenerateRange(ctx, rangeExpr, outputPath)
}
