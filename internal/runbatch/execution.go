// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NoFailedStep is the FailedStep value of a result where nothing failed.
const NoFailedStep = -1

var (
	styleSuccess = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ExecutionResult is the outcome of running a sequence of steps.
type ExecutionResult struct {
	Success    bool
	Output     string // Transcript of every step that ran.
	Err        error  // Set when Success is false.
	FailedStep int    // Zero-based index of the failed step, NoFailedStep otherwise.
	Total      int    // Number of steps in the sequence.
}

// Failed returns a result for a sequence that could not start, for example because the command does not exist.
func Failed(err error) ExecutionResult {
	return ExecutionResult{Err: err, FailedStep: NoFailedStep}
}

// ErrorMessage returns the error text, or an empty string on success.
func (r ExecutionResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}

	return r.Err.Error()
}

// OutputOptions controls what WriteText includes.
type OutputOptions struct {
	IncludeTranscript bool // Write the step transcript before the summary.
	Colour            bool // Style the summary line.
}

// DefaultOutputOptions returns options that print the transcript without colour.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{IncludeTranscript: true}
}

// WriteText writes the transcript, if requested, and a one-line summary to w.
func (r ExecutionResult) WriteText(w io.Writer, opts *OutputOptions) error {
	if opts == nil {
		opts = DefaultOutputOptions()
	}

	render := func(s lipgloss.Style, str string) string {
		if !opts.Colour {
			return str
		}

		return s.Render(str)
	}

	var sb strings.Builder

	if opts.IncludeTranscript && r.Output != "" {
		sb.WriteString(r.Output)
		sb.WriteString("\n")
	}

	switch {
	case r.Success:
		sb.WriteString(render(styleSuccess, "✓"))
		fmt.Fprintf(&sb, " %d/%d steps completed", r.Total, r.Total)
	case r.FailedStep >= 0:
		sb.WriteString(render(styleError, "✗"))
		fmt.Fprintf(&sb, " failed at step %d/%d", r.FailedStep+1, r.Total)

		if r.FailedStep > 0 {
			sb.WriteString(render(styleDim, fmt.Sprintf(" (%d completed)", r.FailedStep)))
		}
	default:
		sb.WriteString(render(styleError, "✗"))
		fmt.Fprintf(&sb, " %s", r.ErrorMessage())
	}

	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())

	return err
}
