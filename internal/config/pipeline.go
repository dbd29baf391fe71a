package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/denizydmr07/stubrun/internal/pipeline"
)

// Manifest is the YAML pipeline file format. Each step names a working
// directory and a single command line; success/failure messages are derived
// from the step name unless overridden.
type Manifest struct {
	Steps []ManifestStep `yaml:"steps"`
}

// ManifestStep is one step entry in a Manifest.
type ManifestStep struct {
	Name    string `yaml:"name"`
	Dir     string `yaml:"dir"`
	Command string `yaml:"command"`
	Start   string `yaml:"start,omitempty"`
	Success string `yaml:"success,omitempty"`
	Failure string `yaml:"failure,omitempty"`
}

// DefaultPipeline returns the built-in two-step pipeline: the server stub
// generator, then the client stub generator, each run with `go run` inside
// its own directory under baseDir.
func DefaultPipeline(baseDir string) []pipeline.Step {
	return []pipeline.Step{
		{
			Name:           "server",
			Dir:            filepath.Join(baseDir, "generator_server_stub"),
			Command:        "go",
			Args:           []string{"run", "generator_server_stub.go"},
			StartMessage:   "Running the server stub generator...",
			SuccessMessage: "Server stub generation successful!",
			FailureMessage: "Server stub generation failed.",
		},
		{
			Name:           "client",
			Dir:            filepath.Join(baseDir, "generator_client_stub"),
			Command:        "go",
			Args:           []string{"run", "generator_client_stub.go"},
			StartMessage:   "Running the client stub generator...",
			SuccessMessage: "Client stub generation successful!",
			FailureMessage: "Client stub generation failed.",
		},
	}
}

// LoadManifest reads a YAML pipeline manifest and converts it into steps.
// Relative step directories resolve against the manifest's own directory.
func LoadManifest(path string) ([]pipeline.Step, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse pipeline manifest: %w", err)
	}
	if len(m.Steps) == 0 {
		return nil, fmt.Errorf("pipeline manifest %s defines no steps", path)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(m.Steps))
	steps := make([]pipeline.Step, 0, len(m.Steps))
	for i, ms := range m.Steps {
		if ms.Name == "" {
			return nil, fmt.Errorf("step %d: name is required", i+1)
		}
		if seen[ms.Name] {
			return nil, fmt.Errorf("duplicate step name %q", ms.Name)
		}
		seen[ms.Name] = true
		if ms.Command == "" {
			return nil, fmt.Errorf("step %q: command is required", ms.Name)
		}
		argv, err := shellquote.Split(ms.Command)
		if err != nil {
			return nil, fmt.Errorf("step %q: parse command: %w", ms.Name, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("step %q: command is empty", ms.Name)
		}

		dir := ms.Dir
		if dir == "" {
			dir = "."
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}

		step := pipeline.Step{
			Name:           ms.Name,
			Dir:            dir,
			Command:        argv[0],
			Args:           argv[1:],
			StartMessage:   ms.Start,
			SuccessMessage: ms.Success,
			FailureMessage: ms.Failure,
		}
		if step.StartMessage == "" {
			step.StartMessage = fmt.Sprintf("Running %s...", ms.Name)
		}
		if step.SuccessMessage == "" {
			step.SuccessMessage = fmt.Sprintf("%s succeeded.", ms.Name)
		}
		if step.FailureMessage == "" {
			step.FailureMessage = fmt.Sprintf("%s failed.", ms.Name)
		}
		steps = append(steps, step)
	}
	return steps, nil
}
