package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

var validRef = regexp.MustCompile(`^[a-zA-Z0-9._/\-]+$`)

// execRunner runs commands with the child's output streamed to the given writers.
type execRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner returns a CommandRunner that streams output to stdout/stderr.
func NewExecRunner(stdout, stderr io.Writer) CommandRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &execRunner{stdout: stdout, stderr: stderr}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return cmd.Run()
}

// cliffService is the implementation of the CliffService interface.
type cliffService struct {
	command []string
	// timeout for command execution, zero means none
	timeout time.Duration
	runner  CommandRunner
	logger  *zap.Logger
}

// NewCliffService creates a new CliffService. command is the program prefix that
// runs git-cliff, e.g. ["uv", "run", "git-cliff"].
func NewCliffService(command []string, timeout time.Duration, runner CommandRunner, logger *zap.Logger) CliffService {
	if len(command) == 0 {
		command = []string{"git-cliff"}
	}
	if runner == nil {
		runner = NewExecRunner(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cliffService{
		command: command,
		timeout: timeout,
		runner:  runner,
		logger:  logger,
	}
}

// sanitizeRef validates one side of a range expression to prevent argument injection.
func sanitizeRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("empty reference")
	}
	if len(ref) > MaxRefLength {
		return fmt.Errorf("reference too long: maximum %d characters", MaxRefLength)
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("reference cannot start with '-': %s", ref)
	}
	if strings.Contains(ref, "..") {
		return fmt.Errorf("reference contains '..': %s", ref)
	}
	if !validRef.MatchString(ref) {
		return fmt.Errorf("invalid reference format: %s", ref)
	}
	return nil
}

// sanitizeRange validates a "previous..end" expression.
func (s *cliffService) sanitizeRange(rangeExpr string) error {
	previous, end, ok := strings.Cut(rangeExpr, "..")
	if !ok {
		return fmt.Errorf("invalid range %q: expected previous..end", rangeExpr)
	}
	if err := sanitizeRef(previous); err != nil {
		return fmt.Errorf("invalid range start: %w", err)
	}
	if err := sanitizeRef(end); err != nil {
		return fmt.Errorf("invalid range end: %w", err)
	}
	return nil
}

// sanitizeOutputPath validates the changelog destination.
func (s *cliffService) sanitizeOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if len(path) > MaxPathLength {
		return fmt.Errorf("output path too long: maximum %d characters", MaxPathLength)
	}
	if strings.HasPrefix(path, "-") {
		return fmt.Errorf("output path cannot start with '-': %s", path)
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("output path contains invalid path traversal")
	}
	return nil
}

// GenerateRange runs git-cliff over rangeExpr and writes the result to outputPath.
func (s *cliffService) GenerateRange(ctx context.Context, rangeExpr, outputPath string) error {
	if err := s.sanitizeRange(rangeExpr); err != nil {
		return err
	}
	if err := s.sanitizeOutputPath(outputPath); err != nil {
		return err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	args := append(append([]string{}, s.command[1:]...), rangeExpr, "-o", outputPath)
	s.logger.Debug("running changelog tool",
		zap.String("command", s.command[0]),
		zap.Strings("args", args),
	)
	if err := s.runner.Run(ctx, s.command[0], args...); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("git-cliff timed out after %v", s.timeout)
		}
		return fmt.Errorf("git-cliff failed: %w", err)
	}
	return nil
}
