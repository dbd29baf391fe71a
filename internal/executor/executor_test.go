package executor

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based executor tests are unix-only")
	}
}

func TestExecute_CapturesStdout(t *testing.T) {
	skipOnWindows(t)
	e := &Executor{}
	res, err := e.Execute(context.Background(), []string{"sh", "-c", "echo hello"}, "")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
	if res.Stdout != "hello\n" {
		t.Fatalf("unexpected stdout: %q", res.Stdout)
	}
}

func TestExecute_NonZeroExitReportsCodeAndStderr(t *testing.T) {
	skipOnWindows(t)
	e := &Executor{}
	res, err := e.Execute(context.Background(), []string{"sh", "-c", "echo boom >&2; exit 3"}, "")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", res.ExitCode)
	}
	if res.Stderr != "boom\n" {
		t.Fatalf("unexpected stderr: %q", res.Stderr)
	}
}

func TestExecute_RunsInGivenDirectory(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	e := &Executor{}
	res, err := e.Execute(context.Background(), []string{"pwd"}, dir)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	got, err := filepath.EvalSymlinks(strings.TrimSpace(res.Stdout))
	if err != nil {
		t.Fatalf("EvalSymlinks(%q): %v", res.Stdout, err)
	}
	if got != want {
		t.Fatalf("expected pwd %q, got %q", want, got)
	}
}

func TestExecute_MissingExecutable(t *testing.T) {
	e := &Executor{}
	_, err := e.Execute(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, "")
	if err == nil {
		t.Fatal("expected error for missing executable")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecute_EmptyCommand(t *testing.T) {
	e := &Executor{}
	if _, err := e.Execute(context.Background(), nil, ""); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestExecute_DryRunPrintsWithoutRunning(t *testing.T) {
	var buf bytes.Buffer
	e := &Executor{DryRun: true, Out: &buf}
	res, err := e.Execute(context.Background(), []string{"definitely-not-a-real-binary-xyz", "arg"}, "some/dir")
	if err != nil {
		t.Fatalf("dry-run must not fail: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("dry-run exit code: %d", res.ExitCode)
	}
	out := buf.String()
	if !strings.Contains(out, "dry-run:") || !strings.Contains(out, "definitely-not-a-real-binary-xyz arg") || !strings.Contains(out, "some/dir") {
		t.Fatalf("unexpected dry-run output: %q", out)
	}
}

func TestExecute_ContextTimeoutKillsCommand(t *testing.T) {
	skipOnWindows(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	e := &Executor{}
	_, err := e.Execute(ctx, []string{"sh", "-c", "sleep 10"}, "")
	if err == nil {
		t.Fatal("expected error after context deadline")
	}
	if !strings.Contains(err.Error(), "interrupted") {
		t.Fatalf("unexpected error: %v", err)
	}
}
