// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(steps ...string) *Model {
	m := NewModel("deploy", steps)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return m
}

func TestStepStatus_String(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StepStatus(42).String())
}

func TestModel_StepLifecycle(t *testing.T) {
	m := newTestModel("make build", "./deploy.sh")

	m.Update(StepStartedMsg{Index: 0})
	assert.Equal(t, StatusRunning, m.Steps()[0].Status)
	assert.Equal(t, StatusPending, m.Steps()[1].Status)

	m.Update(StepCompletedMsg{Index: 0, Output: "compiling\nbuilt ok\n\n"})
	m.Update(StepStartedMsg{Index: 1})

	first := m.Steps()[0]
	assert.Equal(t, StatusSuccess, first.Status)
	assert.Equal(t, "built ok", first.LastOutput)
	assert.Equal(t, time.Second, first.EndTime.Sub(first.StartTime))
	assert.Equal(t, StatusRunning, m.Steps()[1].Status)

	view := m.View()
	assert.Contains(t, view, "deploy (2 steps)")
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "[1/2] make build")
	assert.Contains(t, view, "built ok")
	assert.Contains(t, view, "[2/2] ./deploy.sh")
	assert.Contains(t, view, "q or ctrl+c to stop")
}

func TestModel_OutOfRangeIndexIsIgnored(t *testing.T) {
	m := newTestModel("true")

	assert.NotPanics(t, func() {
		m.Update(StepStartedMsg{Index: 1})
		m.Update(StepCompletedMsg{Index: -1})
	})
}

func TestModel_SequenceSucceeded(t *testing.T) {
	m := newTestModel("true")
	m.Update(StepStartedMsg{Index: 0})
	m.Update(StepCompletedMsg{Index: 0})

	_, cmd := m.Update(SequenceCompletedMsg{Result: runbatch.ExecutionResult{Success: true, FailedStep: runbatch.NoFailedStep, Total: 1}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.True(t, m.Completed())
	assert.Contains(t, m.View(), "All steps completed")
}

func TestModel_SequenceFailed(t *testing.T) {
	m := newTestModel("true", "false", "true")
	m.Update(StepStartedMsg{Index: 0})
	m.Update(StepCompletedMsg{Index: 0})
	m.Update(StepStartedMsg{Index: 1})

	res := runbatch.ExecutionResult{
		FailedStep: 1,
		Total:      3,
		Err:        errors.New("command failed: false (exit code 1)\nstderr text"),
	}
	m.Update(SequenceCompletedMsg{Result: res})

	failed := m.Steps()[1]
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "command failed: false (exit code 1)", failed.ErrorMsg)
	assert.Equal(t, StatusPending, m.Steps()[2].Status)

	view := m.View()
	assert.Contains(t, view, "Error: command failed: false (exit code 1)")
	assert.Contains(t, view, "Failed at step 2/3")
}

func TestModel_NotFound(t *testing.T) {
	m := newTestModel()
	m.Update(SequenceCompletedMsg{Result: runbatch.Failed(errors.New(`command with id "x" not found`))})

	assert.Contains(t, m.View(), `command with id "x" not found`)
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel("sleep 10")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "Stopping...")
}

func TestModel_Truncate(t *testing.T) {
	m := newTestModel()
	assert.Equal(t, "unchanged", m.truncate("unchanged"))

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	long := "echo this is a very long command line that will not fit"
	got := m.truncate(long)
	assert.Len(t, []rune(got), 30)
	assert.True(t, len(got) < len(long))
}
