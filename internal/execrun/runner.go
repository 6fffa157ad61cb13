package execrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Result captures the outcome of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Combined joins stdout and stderr with a single space.
func (r Result) Combined() string {
	return r.Stdout + " " + r.Stderr
}

// Runner abstracts command execution for testability.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Option configures the command runner.
type Option func(*CommandRunner)

// WithTimeout bounds every invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(r *CommandRunner) {
		if timeout >= 0 {
			r.timeout = timeout
		}
	}
}

// CommandRunner executes real processes via os/exec.
type CommandRunner struct {
	timeout time.Duration
}

// New constructs a CommandRunner.
func New(opts ...Option) *CommandRunner {
	r := &CommandRunner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts name with args and waits for it to exit. A non-zero exit status
// is reported through Result.ExitCode, not as an error; errors are reserved
// for processes that could not be started or were cut short by ctx.
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, errors.New("command name required")
	}

	runCtx := ctx
	if r != nil && r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, name, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}
	if ctxErr := runCtx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("run %s: %w", name, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	result.ExitCode = -1
	return result, fmt.Errorf("run %s: %w", name, err)
}
