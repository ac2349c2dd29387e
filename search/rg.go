package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const (
	DefaultRgPath      = "rg"
	DefaultTimeout     = 3 * time.Second
	DefaultExcludeGlob = "!*persisted*"

	// fileType is the name registered with --type-add
	fileType = "graphql"

	// noMatchExitCode is what rg exits with when nothing matched
	noMatchExitCode = 1

	// waitDelay bounds how long Wait blocks on pipes after the process is killed
	waitDelay = 500 * time.Millisecond
)

// DefaultExtensions are the GraphQL file extensions searched by default
var DefaultExtensions = []string{"graphql", "gql"}

// Options configures a Runner
type Options struct {
	RgPath      string
	Extensions  []string
	ExcludeGlob string
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Runner executes ripgrep restricted to GraphQL files
type Runner struct {
	opts Options
}

// NewRunner creates a Runner, filling unset options with defaults
func NewRunner(opts Options) *Runner {
	if opts.RgPath == "" {
		opts.RgPath = DefaultRgPath
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.ExcludeGlob == "" {
		opts.ExcludeGlob = DefaultExcludeGlob
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{opts: opts}
}

// ExecError reports that ripgrep could not be run, failed, or timed out.
// A "no matches" exit is never an ExecError.
type ExecError struct {
	Pattern  string
	ExitCode int // -1 when the process did not exit normally
	Stderr   string
	Timeout  bool
	Err      error
}

func (e *ExecError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("ripgrep timed out searching %q: %v", e.Pattern, e.Err)
	case e.Stderr != "":
		return fmt.Sprintf("ripgrep failed (exit %d): %s", e.ExitCode, e.Stderr)
	default:
		return fmt.Sprintf("ripgrep failed: %v", e.Err)
	}
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Check verifies that the rg binary can be found
func (r *Runner) Check() error {
	if _, err := exec.LookPath(r.opts.RgPath); err != nil {
		return &ExecError{
			ExitCode: -1,
			Err:      fmt.Errorf("ripgrep (%s) is not installed or not in PATH, see https://github.com/BurntSushi/ripgrep: %w", r.opts.RgPath, err),
		}
	}
	return nil
}

// Args builds the rg argument list for pattern
func (r *Runner) Args(pattern string) []string {
	return []string{
		"--line-number",
		"--column",
		"--no-heading",
		"--color=never",
		"--type-add", fileType + ":" + typeGlob(r.opts.Extensions),
		"--ignore-case",
		"--type", fileType,
		"--glob", r.opts.ExcludeGlob,
		"--regexp", pattern,
	}
}

// typeGlob renders *.ext or *.{a,b}
func typeGlob(exts []string) string {
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.{" + strings.Join(exts, ",") + "}"
}

// Search runs rg with pattern in dir and returns the raw output lines in the
// order rg emitted them. No matches yields an empty slice and a nil error.
// The process is killed when the timeout elapses or ctx is cancelled.
func (r *Runner) Search(ctx context.Context, dir, pattern string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	args := r.Args(pattern)
	r.opts.Logger.Debug("running ripgrep", "cmd", r.opts.RgPath+" "+strings.Join(args, " "), "dir", dir)

	// No path argument: rg searches cmd.Dir and prints paths relative to it.
	cmd := exec.CommandContext(ctx, r.opts.RgPath, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &ExecError{
				Pattern:  pattern,
				ExitCode: -1,
				Timeout:  errors.Is(ctxErr, context.DeadlineExceeded),
				Err:      ctxErr,
			}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() == noMatchExitCode {
				return []string{}, nil
			}
			return nil, &ExecError{
				Pattern:  pattern,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
				Err:      err,
			}
		}
		return nil, &ExecError{Pattern: pattern, ExitCode: -1, Err: fmt.Errorf("failed to start ripgrep: %w", err)}
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		r.opts.Logger.Warn("ripgrep stderr", "stderr", msg)
	}

	return splitLines(stdout.Bytes())
}

// splitLines returns the non-empty lines of out
func splitLines(out []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lines := make([]string, 0)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read output: %w", err)
	}
	return lines, nil
}
