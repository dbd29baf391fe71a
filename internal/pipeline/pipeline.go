// Package pipeline runs an ordered list of external commands, stopping at the
// first failure.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/denizydmr07/stubrun/internal/executor"
)

// Step describes one external command invocation. Dir is the explicit working
// directory for the child process; the orchestrator never changes its own
// current directory.
type Step struct {
	Name           string
	Dir            string
	Command        string
	Args           []string
	StartMessage   string
	SuccessMessage string
	FailureMessage string
}

// Argv returns the full command line for the step.
func (s Step) Argv() []string {
	return append([]string{s.Command}, s.Args...)
}

// StepResult records the outcome of one executed step. Steps that never
// started produce no StepResult.
type StepResult struct {
	Step     Step
	ExitCode int
	Stderr   string
	Duration time.Duration
}

// StepError is the single failure kind: an external command that could not
// run or exited non-zero. Stderr carries the child's captured diagnostic text.
type StepError struct {
	Step     string
	ExitCode int
	Stderr   string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed with exit code %d", e.Step, e.ExitCode)
}

// Pipeline executes steps strictly in order.
type Pipeline struct {
	Steps []Step
	Log   *logrus.Entry
}

// New returns a Pipeline over the given steps.
func New(steps []Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

func (p *Pipeline) log() *logrus.Entry {
	if p.Log != nil {
		return p.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Run executes every step in order using r, writing the human-readable
// progress lines to out. It stops at the first failure and returns a
// *StepError; a later step never starts unless every earlier step exited 0.
// The returned results cover the steps that were actually executed, so a
// failed run still reports the failing step.
//
// On full success the final "Done." line is written and the error is nil.
func (p *Pipeline) Run(ctx context.Context, r executor.Runner, out io.Writer) ([]StepResult, error) {
	var results []StepResult
	for _, step := range p.Steps {
		fmt.Fprintln(out, step.StartMessage)
		p.log().WithFields(logrus.Fields{
			"step": step.Name,
			"dir":  step.Dir,
			"argv": step.Argv(),
		}).Debug("starting step")

		res, err := r.Execute(ctx, step.Argv(), step.Dir)
		if err != nil {
			fmt.Fprintln(out, step.FailureMessage)
			fmt.Fprintln(out, err.Error())
			results = append(results, StepResult{Step: step, ExitCode: -1, Stderr: err.Error(), Duration: res.Duration})
			return results, &StepError{Step: step.Name, ExitCode: -1, Stderr: err.Error()}
		}
		results = append(results, StepResult{Step: step, ExitCode: res.ExitCode, Stderr: res.Stderr, Duration: res.Duration})

		if res.ExitCode != 0 {
			fmt.Fprintln(out, step.FailureMessage)
			fmt.Fprint(out, res.Stderr)
			if res.Stderr != "" && res.Stderr[len(res.Stderr)-1] != '\n' {
				fmt.Fprintln(out)
			}
			p.log().WithFields(logrus.Fields{
				"step":      step.Name,
				"exit_code": res.ExitCode,
			}).Error("step failed")
			return results, &StepError{Step: step.Name, ExitCode: res.ExitCode, Stderr: res.Stderr}
		}

		fmt.Fprintln(out, step.SuccessMessage)
		p.log().WithFields(logrus.Fields{
			"step":     step.Name,
			"duration": res.Duration,
		}).Debug("step succeeded")
	}
	fmt.Fprintln(out, "Done.")
	return results, nil
}
