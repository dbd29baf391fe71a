package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSteps_PrintsDefaultPipeline(t *testing.T) {
	out, err := execute(t, "steps", "--base-dir", "/repo", "--pipeline=")
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	if !strings.Contains(out, "server") || !strings.Contains(out, "client") {
		t.Fatalf("missing step names: %q", out)
	}
	if !strings.Contains(out, filepath.Join("/repo", "generator_server_stub")) {
		t.Fatalf("missing server dir: %q", out)
	}
	if !strings.Contains(out, "go run generator_server_stub.go") {
		t.Fatalf("missing server command: %q", out)
	}
}

func TestSteps_UsesManifestWhenGiven(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "pipeline.yaml")
	content := "steps:\n  - name: only\n    command: make stubs\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	out, err := execute(t, "steps", "--pipeline", manifest)
	if err != nil {
		t.Fatalf("steps: %v", err)
	}
	if !strings.Contains(out, "only") || !strings.Contains(out, "make stubs") {
		t.Fatalf("manifest steps not printed: %q", out)
	}
	if strings.Contains(out, "generator_server_stub") {
		t.Fatalf("default pipeline leaked into manifest output: %q", out)
	}
}

func TestSteps_BadManifestFails(t *testing.T) {
	if _, err := execute(t, "steps", "--pipeline", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}
