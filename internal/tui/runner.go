// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
)

// RunFunc runs a sequence, calling onStep after every successful step.
type RunFunc func(ctx context.Context, onStep runbatch.StepFunc) runbatch.ExecutionResult

// Runner shows a Model while a RunFunc executes.
type Runner struct {
	model   *Model
	options []tea.ProgramOption
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where the view is drawn.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.options = append(r.options, tea.WithOutput(w))
	}
}

// WithInput sets where key presses are read from. A nil reader disables input.
func WithInput(in io.Reader) Option {
	return func(r *Runner) {
		r.options = append(r.options, tea.WithInput(in))
	}
}

// WithoutRenderer disables drawing, for environments without a terminal.
func WithoutRenderer() Option {
	return func(r *Runner) {
		r.options = append(r.options, tea.WithoutRenderer())
	}
}

// NewRunner returns a Runner for steps shown under title.
func NewRunner(title string, steps []string, opts ...Option) *Runner {
	r := &Runner{model: NewModel(title, steps)}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Model returns the model driven by the runner.
func (r *Runner) Model() *Model {
	return r.model
}

// Run executes run while the view is shown. Quitting the view cancels the run and waits for it to stop.
func (r *Runner) Run(ctx context.Context, run RunFunc) (runbatch.ExecutionResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(r.model, append([]tea.ProgramOption{tea.WithContext(ctx)}, r.options...)...)

	resultCh := make(chan runbatch.ExecutionResult, 1)

	go func() {
		program.Send(StepStartedMsg{Index: 0})

		res := run(ctx, func(index int, output string) {
			program.Send(StepCompletedMsg{Index: index, Output: output})
			program.Send(StepStartedMsg{Index: index + 1})
		})

		program.Send(SequenceCompletedMsg{Result: res})
		resultCh <- res
	}()

	_, err := program.Run()

	// The view can exit first when the user quits; stop the steps.
	select {
	case res := <-resultCh:
		return res, ignoreKilled(err)
	default:
	}

	cancel()

	return <-resultCh, ignoreKilled(err)
}

// ignoreKilled drops the error bubbletea returns when its context is cancelled.
func ignoreKilled(err error) error {
	if err == nil || errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}

	return err
}
