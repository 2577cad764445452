// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
)

const (
	commandDurationRounding = 100 * time.Millisecond
	ellipsis                = "..."
	minLineWidth            = 20
)

// StepStartedMsg indicates that a step has started.
type StepStartedMsg struct {
	Index int
}

// StepCompletedMsg indicates that a step finished successfully.
type StepCompletedMsg struct {
	Index  int
	Output string
}

// SequenceCompletedMsg indicates that the sequence has finished, successfully or not.
type SequenceCompletedMsg struct {
	Result runbatch.ExecutionResult
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case StepStartedMsg:
		if n := m.step(msg.Index); n != nil {
			n.start(m.now())
		}

		return m, nil

	case StepCompletedMsg:
		if n := m.step(msg.Index); n != nil {
			n.setOutput(msg.Output)
			n.finish(StatusSuccess, m.now())
		}

		return m, nil

	case SequenceCompletedMsg:
		m.completed = true
		m.result = msg.Result

		if n := m.step(msg.Result.FailedStep); n != nil && !msg.Result.Success {
			n.ErrorMsg = firstLine(msg.Result.ErrorMessage())
			n.finish(StatusFailed, m.now())
		}

		return m, tea.Quit
	}

	return m, nil
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("▶ %s (%d steps)", m.title, len(m.steps))))
	b.WriteString("\n")

	for i, n := range m.steps {
		m.renderStep(&b, i, n)
	}

	switch {
	case m.completed && m.result.Success:
		b.WriteString(m.styles.Success.Render("✓ All steps completed"))
		b.WriteString("\n")
	case m.completed && m.result.FailedStep >= 0:
		b.WriteString(m.styles.Failed.Render(fmt.Sprintf("✗ Failed at step %d/%d", m.result.FailedStep+1, len(m.steps))))
		b.WriteString("\n")
	case m.completed:
		b.WriteString(m.styles.Failed.Render("✗ " + m.result.ErrorMessage()))
		b.WriteString("\n")
	case m.quitting:
		b.WriteString(m.styles.Help.Render("Stopping..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.styles.Help.Render("q or ctrl+c to stop"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderStep(b *strings.Builder, i int, n *StepNode) {
	var icon string

	var style lipgloss.Style

	switch n.Status {
	case StatusRunning:
		icon = m.spinner.View()
		style = m.styles.Running
	case StatusSuccess:
		icon = "✓"
		style = m.styles.Success
	case StatusFailed:
		icon = "✗"
		style = m.styles.Failed
	default:
		icon = "·"
		style = m.styles.Pending
	}

	line := fmt.Sprintf("[%d/%d] %s", i+1, len(m.steps), n.Command)
	fmt.Fprintf(b, "  %s %s", icon, style.Render(m.truncate(line)))

	if !n.StartTime.IsZero() {
		end := n.EndTime
		if end.IsZero() {
			end = m.now()
		}

		b.WriteString(m.styles.Output.Render(fmt.Sprintf(" (%v)", end.Sub(n.StartTime).Round(commandDurationRounding))))
	}

	b.WriteString("\n")

	switch {
	case n.Status == StatusFailed && n.ErrorMsg != "":
		b.WriteString("      ")
		b.WriteString(m.styles.Error.Render(m.truncate("Error: " + n.ErrorMsg)))
		b.WriteString("\n")
	case n.LastOutput != "":
		b.WriteString("      ")
		b.WriteString(m.styles.Output.Render(m.truncate(n.LastOutput)))
		b.WriteString("\n")
	}
}

// truncate shortens s to fit the terminal width, when known.
func (m *Model) truncate(s string) string {
	limit := m.width - 10
	if m.width == 0 || limit < minLineWidth {
		return s
	}

	r := []rune(s)
	if len(r) <= limit {
		return s
	}

	return string(r[:limit-len(ellipsis)]) + ellipsis
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
