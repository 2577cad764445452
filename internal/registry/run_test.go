// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/matt-FFFFFF/one-line/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunByID_UnknownID(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.RunByID(context.Background(), "missing", "", nil)

	assert.False(t, res.Success)
	assert.Empty(t, res.Output)
	assert.Equal(t, runbatch.NoFailedStep, res.FailedStep)
	require.ErrorIs(t, res.Err, store.ErrNotFound)
	assert.Equal(t, `command with id "missing" not found`, res.ErrorMessage())
}

func TestRunByNameOrAlias_Unknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.RunByNameOrAlias(context.Background(), "ghost", "", nil)

	require.ErrorIs(t, res.Err, store.ErrNotFound)
	assert.Equal(t, `command with name or alias "ghost" not found`, res.ErrorMessage())
}

func TestRun_CountsSuccessfulRuns(t *testing.T) {
	skipOnWindows(t)

	r, _ := newTestRegistry(t)
	ctx := context.Background()

	c, err := r.Create(ctx, "Say Hello", []string{"echo hello", "echo world"}, "")
	require.NoError(t, err)

	var outputs []string

	res := r.Run(ctx, "say-hello", "", func(_ int, out string) { outputs = append(outputs, out) })
	require.True(t, res.Success, res.Output)
	assert.Equal(t, []string{"hello\n", "world\n"}, outputs)

	res = r.RunByID(ctx, c.ID, "", nil)
	require.True(t, res.Success)

	res = r.RunByNameOrAlias(ctx, "Say Hello", "", nil)
	require.True(t, res.Success)

	got, _ := r.Get(ctx, c.ID)
	assert.Equal(t, 3, got.UsageCount)
}

func TestRun_FailureIsNotCounted(t *testing.T) {
	skipOnWindows(t)

	r, _ := newTestRegistry(t)
	ctx := context.Background()

	c, err := r.Create(ctx, "Broken", []string{"true", "false", "true"}, "")
	require.NoError(t, err)

	res := r.Run(ctx, "broken", "", nil)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.FailedStep)
	require.ErrorIs(t, res.Err, runbatch.ErrStepExecution)
	assert.NotContains(t, res.Output, "[Step 3/3]")

	got, _ := r.Get(ctx, c.ID)
	assert.Zero(t, got.UsageCount)
}

func TestRunSteps_AdHoc(t *testing.T) {
	skipOnWindows(t)

	r, _ := newTestRegistry(t)

	res := r.RunSteps(context.Background(), []string{"echo a", "echo b"}, "", nil)
	require.True(t, res.Success)
	assert.Equal(t, "\n[Step 1/2] echo a\na\n\n\n[Step 2/2] echo b\nb\n\n", res.Output)
	assert.Empty(t, r.List(context.Background()))
}

func TestContext(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	got, ok := FromContext(NewContext(context.Background(), r))
	require.True(t, ok)
	assert.Same(t, r, got)
}
