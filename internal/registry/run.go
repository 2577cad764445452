// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package registry

import (
	"context"

	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/matt-FFFFFF/one-line/internal/store"
)

// RunByID runs the command with the given id in cwd.
// An unknown id yields a failed result wrapping store.ErrNotFound.
func (r *Registry) RunByID(ctx context.Context, id, cwd string, onStep runbatch.StepFunc) runbatch.ExecutionResult {
	c, ok := r.store.GetByID(ctx, id)
	if !ok {
		return runbatch.Failed(&NotFoundError{By: "id", Token: id})
	}

	return r.run(ctx, c, cwd, onStep)
}

// RunByNameOrAlias runs the command whose name, or failing that alias, matches token.
func (r *Registry) RunByNameOrAlias(ctx context.Context, token, cwd string, onStep runbatch.StepFunc) runbatch.ExecutionResult {
	c, ok := r.resolveNameOrAlias(ctx, token)
	if !ok {
		return runbatch.Failed(&NotFoundError{By: "name or alias", Token: token})
	}

	return r.run(ctx, c, cwd, onStep)
}

// Run runs the command matching token by name, alias or id.
func (r *Registry) Run(ctx context.Context, token, cwd string, onStep runbatch.StepFunc) runbatch.ExecutionResult {
	c, ok := r.Resolve(ctx, token)
	if !ok {
		return runbatch.Failed(&NotFoundError{By: "name, alias or id", Token: token})
	}

	return r.run(ctx, c, cwd, onStep)
}

// RunSteps runs steps that are not stored.
func (r *Registry) RunSteps(ctx context.Context, steps []string, cwd string, onStep runbatch.StepFunc) runbatch.ExecutionResult {
	return r.engine.RunSequence(ctx, steps, cwd, onStep)
}

// run executes c and counts the run when every step succeeded.
func (r *Registry) run(ctx context.Context, c store.Command, cwd string, onStep runbatch.StepFunc) runbatch.ExecutionResult {
	ctx = ctxlog.New(ctx, ctxlog.Logger(ctx).With("alias", c.Alias))
	ctxlog.Info(ctx, "running command", "id", c.ID, "steps", len(c.Steps))

	res := r.engine.RunSequence(ctx, c.Steps, cwd, onStep)
	if !res.Success {
		return res
	}

	if err := r.store.IncrementUsage(ctx, c.ID); err != nil {
		ctxlog.Warn(ctx, "could not record command usage", "id", c.ID, "error", err)
	}

	return res
}
