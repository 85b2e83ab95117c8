// Package cmdexec provides process execution utilities for drupdate.
// It runs a single named command with arguments, capturing stdout, stderr,
// and the exit code so callers can classify outcomes without re-running
// the command.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result holds the captured output and exit status of one command invocation.
//
// Fields:
//   - Stdout: Captured standard output
//   - Stderr: Captured standard error
//   - ExitCode: Process exit code (0 on success)
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Combined returns stdout and stderr concatenated, stdout first.
//
// Package managers split progress and diagnostics across both streams,
// so scanning for markers (e.g. patch identifiers) must consider both.
//
// Returns:
//   - string: Full captured output of the command
func (r Result) Combined() string {
	var b strings.Builder
	b.Write(r.Stdout)
	b.Write(r.Stderr)
	return b.String()
}

// RunFunc is the function signature for command execution.
//
// Implementations run the named command with the given arguments in dir
// and return its captured output. A non-zero exit code is reported through
// Result.ExitCode, not through the error: callers treat exit codes as data.
// The error return is reserved for failures to run the command at all
// (missing binary, permission problems, context cancellation).
//
// Parameters:
//   - ctx: Context for cancellation
//   - dir: Working directory for the command ("" for the current directory)
//   - name: Command name, resolved via PATH
//   - args: Command arguments
//
// Returns:
//   - Result: Captured stdout, stderr, and exit code
//   - error: Non-nil only when the command could not be started
type RunFunc func(ctx context.Context, dir, name string, args ...string) (Result, error)

// Run is the default command execution function.
//
// This variable holds the implementation used for command execution
// throughout the application. It can be replaced with a fake in tests so
// decision and classification logic runs against canned process results.
var Run RunFunc = runCommand

// runCommand executes a single command and captures its output and exit code.
//
// Parameters:
//   - ctx: Context for cancellation
//   - dir: Working directory ("" for the current directory)
//   - name: Command name
//   - args: Command arguments
//
// Returns:
//   - Result: Captured stdout, stderr, and exit code
//   - error: Non-nil when the process could not be started or was cancelled
func runCommand(ctx context.Context, dir, name string, args ...string) (Result, error) {
	if strings.TrimSpace(name) == "" {
		return Result{}, fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Command ran and exited non-zero: the exit code is the answer.
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return res, nil
}
