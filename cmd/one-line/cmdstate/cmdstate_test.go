// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"bytes"
	"context"
	"testing"

	"github.com/matt-FFFFFF/one-line/internal/registry"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/matt-FFFFFF/one-line/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRegistry_Missing(t *testing.T) {
	_, err := Registry(context.Background())
	require.ErrorIs(t, err, ErrNoRegistry)

	_, _, err = Resolve(context.Background(), "deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrNoRegistry.Error())
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	st, err := store.New(ctx, store.Config{Dir: t.TempDir()})
	require.NoError(t, err)

	reg := registry.New(st, runbatch.NewEngine("", 0))
	ctx = registry.NewContext(ctx, reg)

	c, err := reg.Create(ctx, "Deploy App", []string{"make deploy"}, "")
	require.NoError(t, err)

	_, got, err := Resolve(ctx, " deploy-app ")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, _, err = Resolve(ctx, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is required")

	_, _, err = Resolve(ctx, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope" not found`)
}

func TestColour_NonTerminal(t *testing.T) {
	assert.False(t, Colour(&bytes.Buffer{}))
}

func TestWriters_DefaultToRootWriters(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	root := &cli.Command{Name: "root", Writer: out, ErrWriter: errOut}

	assert.Same(t, out, Writer(root))
	assert.Same(t, errOut, ErrWriter(root))
}

func TestExit_CodeOne(t *testing.T) {
	var coder cli.ExitCoder

	require.ErrorAs(t, Exit("boom"), &coder)
	assert.Equal(t, 1, coder.ExitCode())
	assert.Equal(t, "boom", coder.Error())
}
