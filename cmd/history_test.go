package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/denizydmr07/stubrun/internal/history"
	"github.com/denizydmr07/stubrun/internal/pipeline"
)

func TestHistory_Empty(t *testing.T) {
	t.Setenv("STUBRUN_HOME", t.TempDir())

	out, err := execute(t, "history", "--limit", "20")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "no recorded runs") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestHistory_ListsRecordedRuns(t *testing.T) {
	t.Setenv("STUBRUN_HOME", t.TempDir())

	db, err := history.InitDB()
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	repo := history.NewRepository(db)
	step := pipeline.Step{Name: "server", Dir: "/repo/generator_server_stub", Command: "go", Args: []string{"run", "generator_server_stub.go"}}
	id, err := repo.RecordRun(time.Now(), []pipeline.StepResult{
		{Step: step, ExitCode: 2, Stderr: "template not found\n"},
	}, &pipeline.StepError{Step: "server", ExitCode: 2})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	_ = db.Close()

	out, err := execute(t, "history", "--limit", "20")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, id) {
		t.Fatalf("run id not listed: %q", out)
	}
	if !strings.Contains(out, "failed") {
		t.Fatalf("status not listed: %q", out)
	}
	if !strings.Contains(out, "exit=2") {
		t.Fatalf("step exit code not listed: %q", out)
	}
	if !strings.Contains(out, "template not found") {
		t.Fatalf("stderr tail not listed: %q", out)
	}
}
