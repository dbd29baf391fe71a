// Package executor provides process execution for pipeline steps.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
)

// Result holds the outcome of a single command invocation. Stdout and Stderr
// are the full captured streams; ExitCode is the process exit status.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner is an interface for executing commands. It allows tests to inject
// fake implementations without spawning real processes.
//
// Execute runs argv[0] with argv[1:] as arguments in the given working
// directory. A non-zero exit status is not an error: it is reported through
// Result.ExitCode with a nil error. A non-nil error means the command could
// not be run at all (executable missing, context cancelled before start).
type Runner interface {
	Execute(ctx context.Context, argv []string, dir string) (Result, error)
}

// Executor runs commands with an explicit working directory override. The
// process-wide current directory is never changed.
type Executor struct {
	DryRun bool
	Out    io.Writer // dry-run announcements; defaults to os.Stdout
}

// Execute runs argv in dir, capturing stdout and stderr. It blocks until the
// child exits; callers that want a deadline pass one through ctx.
func (e *Executor) Execute(ctx context.Context, argv []string, dir string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, fmt.Errorf("empty command")
	}

	if e.DryRun {
		out := e.Out
		if out == nil {
			out = os.Stdout
		}
		_, _ = fmt.Fprintf(out, "dry-run: %s (in %s)\n", shellquote.Join(argv...), dir)
		return Result{}, nil
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		return Result{}, fmt.Errorf("executable not found in PATH: %s", argv[0])
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if dir != "" {
		cmd.Dir = dir
	}
	var bout, berr bytes.Buffer
	cmd.Stdout = &bout
	cmd.Stderr = &berr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   bout.String(),
		Stderr:   berr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("command interrupted: %w", ctxErr)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("run command: %w", err)
	}
	return res, nil
}
