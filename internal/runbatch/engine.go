// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
)

// ErrStepExecution is the sentinel wrapped by every StepError.
var ErrStepExecution = errors.New("step execution failed")

// StepError describes a step that could not be started, exited non-zero or was killed.
type StepError struct {
	Step     string
	ExitCode int
	Stderr   string
	Err      error // Underlying cause, nil for a plain non-zero exit.
}

// Error implements the error interface for StepError.
func (e *StepError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "command failed: %s", e.Step)

	switch {
	case errors.Is(e.Err, ErrCouldNotStartProcess):
		fmt.Fprintf(&sb, ": %v", e.Err)
	case e.Err != nil:
		fmt.Fprintf(&sb, " (exit code %d): %v", e.ExitCode, e.Err)
	default:
		fmt.Fprintf(&sb, " (exit code %d)", e.ExitCode)
	}

	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		sb.WriteString("\n")
		sb.WriteString(msg)
	}

	return sb.String()
}

// Unwrap returns ErrStepExecution and the underlying cause.
func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStepExecution}
	}

	return []error{ErrStepExecution, e.Err}
}

// StepOutput is the captured output of a successful step.
type StepOutput struct {
	Stdout string
	Stderr string
}

// Combined returns stdout followed by stderr.
func (o StepOutput) Combined() string {
	return o.Stdout + o.Stderr
}

// StepEvent is the outcome of one step in a sequence.
type StepEvent struct {
	Index  int    // Zero-based position of the step.
	Total  int    // Number of steps in the sequence.
	Step   string // Command line of the step.
	Output string // Combined output of the step.
	Err    error  // Non-nil when the step failed; it is then the last event.
}

// StepFunc is called after each successful step, before the next one starts.
type StepFunc func(index int, output string)

// Engine runs steps through a shell.
type Engine struct {
	Shell       string        // Shell executable, DefaultShell when empty.
	StepTimeout time.Duration // Per-step deadline, zero for none.
	sigCh       chan os.Signal
}

// NewEngine returns an Engine using shell, or the platform default when shell is empty.
func NewEngine(shell string, stepTimeout time.Duration) *Engine {
	return &Engine{Shell: shell, StepTimeout: stepTimeout}
}

// RunStep runs one step in dir and waits for it to finish.
// An empty dir runs the step in the current working directory.
func (e *Engine) RunStep(ctx context.Context, step, dir string) (StepOutput, error) {
	if e.StepTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, e.StepTimeout)
		defer cancel()
	}

	cmd := &ShellCommand{
		Label: step,
		Shell: e.Shell,
		Step:  step,
		Cwd:   dir,
		sigCh: e.sigCh,
	}

	res := cmd.Run(ctx)
	out := StepOutput{Stdout: string(res.StdOut), Stderr: string(res.StdErr)}

	if res.Status == ResultStatusSuccess {
		return out, nil
	}

	return out, &StepError{
		Step:     step,
		ExitCode: res.ExitCode,
		Stderr:   out.Stderr,
		Err:      res.Error,
	}
}

// Steps returns a lazy sequence that runs steps in order as it is iterated.
// Iteration ends after the first failed step, whose event carries the error.
// Breaking out of the loop stops before the next step is started.
func (e *Engine) Steps(ctx context.Context, steps []string, dir string) iter.Seq[StepEvent] {
	return func(yield func(StepEvent) bool) {
		for i, step := range steps {
			ctxlog.Debug(ctx, "running step", "index", i, "total", len(steps))

			out, err := e.RunStep(ctx, step, dir)

			ev := StepEvent{
				Index:  i,
				Total:  len(steps),
				Step:   step,
				Output: out.Combined(),
				Err:    err,
			}

			if !yield(ev) || err != nil {
				return
			}
		}
	}
}

// RunSequence runs steps in order, stopping at the first failure, and returns the transcript.
// onStep, when not nil, is called synchronously after every successful step.
func (e *Engine) RunSequence(ctx context.Context, steps []string, dir string, onStep StepFunc) ExecutionResult {
	var transcript strings.Builder

	for ev := range e.Steps(ctx, steps, dir) {
		if ev.Err != nil {
			fmt.Fprintf(&transcript, "\n[Step %d/%d] %s\nError: %s\n", ev.Index+1, ev.Total, ev.Step, ev.Err.Error())
			ctxlog.Warn(ctx, "step failed", "index", ev.Index, "error", ev.Err)

			return ExecutionResult{
				Output:     transcript.String(),
				Err:        ev.Err,
				FailedStep: ev.Index,
				Total:      ev.Total,
			}
		}

		fmt.Fprintf(&transcript, "\n[Step %d/%d] %s\n%s\n", ev.Index+1, ev.Total, ev.Step, ev.Output)

		if onStep != nil {
			onStep(ev.Index, ev.Output)
		}
	}

	return ExecutionResult{
		Success:    true,
		Output:     transcript.String(),
		FailedStep: NoFailedStep,
		Total:      len(steps),
	}
}
