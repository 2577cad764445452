// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	steps := []string{"first", "second"}
	r := NewRunner("demo", steps, WithInput(nil), WithOutput(&bytes.Buffer{}), WithoutRenderer())

	res, err := r.Run(context.Background(), func(_ context.Context, onStep runbatch.StepFunc) runbatch.ExecutionResult {
		onStep(0, "one\n")
		onStep(1, "two\n")

		return runbatch.ExecutionResult{Success: true, FailedStep: runbatch.NoFailedStep, Total: 2}
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	m := r.Model()
	assert.True(t, m.Completed())
	assert.Equal(t, StatusSuccess, m.Steps()[0].Status)
	assert.Equal(t, "two", m.Steps()[1].LastOutput)
}

func TestRunner_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner("demo", []string{"wait"}, WithInput(nil), WithOutput(&bytes.Buffer{}), WithoutRenderer())

	res, err := r.Run(ctx, func(ctx context.Context, _ runbatch.StepFunc) runbatch.ExecutionResult {
		cancel()
		<-ctx.Done()

		return runbatch.ExecutionResult{FailedStep: 0, Total: 1, Err: ctx.Err()}
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
}
