// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
)

// StepStatus is the state of a step in the view.
type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusRunning
	StatusSuccess
	StatusFailed
)

// String returns a string representation of the step status.
func (s StepStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StepNode is one step in the view.
type StepNode struct {
	Command    string
	Status     StepStatus
	StartTime  time.Time
	EndTime    time.Time
	LastOutput string
	ErrorMsg   string
}

func (n *StepNode) start(now time.Time) {
	n.Status = StatusRunning
	n.StartTime = now
}

func (n *StepNode) finish(status StepStatus, now time.Time) {
	n.Status = status
	n.EndTime = now
}

// setOutput keeps the last non-blank line of output.
func (n *StepNode) setOutput(output string) {
	output = strings.TrimSpace(output)
	if output == "" {
		return
	}

	lines := strings.Split(output, "\n")
	n.LastOutput = strings.TrimSpace(lines[len(lines)-1])
}

// Styles contains all the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Output  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Output: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
	}
}

// Model is the state of the progress view.
type Model struct {
	title     string
	steps     []*StepNode
	spinner   spinner.Model
	styles    *Styles
	width     int
	completed bool
	quitting  bool
	result    runbatch.ExecutionResult
	now       func() time.Time
}

// NewModel returns a model for running steps under title.
func NewModel(title string, steps []string) *Model {
	nodes := make([]*StepNode, len(steps))
	for i, s := range steps {
		nodes[i] = &StepNode{Command: s}
	}

	return &Model{
		title:   title,
		steps:   nodes,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:  NewStyles(),
		now:     time.Now,
	}
}

// Steps returns the step nodes, for inspection.
func (m *Model) Steps() []*StepNode {
	return m.steps
}

// Completed reports whether the sequence has finished.
func (m *Model) Completed() bool {
	return m.completed
}

func (m *Model) step(i int) *StepNode {
	if i < 0 || i >= len(m.steps) {
		return nil
	}

	return m.steps[i]
}
