// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/one-line/internal/alias"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/matt-FFFFFF/one-line/internal/store"
)

// NotFoundError is returned when a token does not resolve to a command.
type NotFoundError struct {
	By    string // What the token was matched against, e.g. "id".
	Token string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command with %s %q not found", e.By, e.Token)
}

// Unwrap returns store.ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return store.ErrNotFound
}

// Registry manages stored commands and runs them.
type Registry struct {
	store  *store.Store
	engine *runbatch.Engine
}

// New returns a Registry over st that runs commands with eng.
func New(st *store.Store, eng *runbatch.Engine) *Registry {
	return &Registry{store: st, engine: eng}
}

// Store returns the underlying store.
func (r *Registry) Store() *store.Store {
	return r.store
}

// List returns every command in insertion order.
func (r *Registry) List(ctx context.Context) []store.Command {
	return r.store.LoadAll(ctx)
}

// Get returns the command with the given id.
func (r *Registry) Get(ctx context.Context, id string) (store.Command, bool) {
	return r.store.GetByID(ctx, id)
}

// GetByName returns the command with the given name, ignoring case.
func (r *Registry) GetByName(ctx context.Context, name string) (store.Command, bool) {
	return r.store.GetByName(ctx, name)
}

// GetByAlias returns the command with the given alias, ignoring case.
func (r *Registry) GetByAlias(ctx context.Context, a string) (store.Command, bool) {
	return r.store.GetByAlias(ctx, a)
}

// Resolve finds a command by name, then alias, then id.
func (r *Registry) Resolve(ctx context.Context, token string) (store.Command, bool) {
	if c, ok := r.resolveNameOrAlias(ctx, token); ok {
		return c, true
	}

	return r.store.GetByID(ctx, token)
}

func (r *Registry) resolveNameOrAlias(ctx context.Context, token string) (store.Command, bool) {
	token = strings.TrimSpace(token)

	if c, ok := r.store.GetByName(ctx, token); ok {
		return c, true
	}

	return r.store.GetByAlias(ctx, token)
}

// Preview is what creating a command would produce, computed without changing anything.
type Preview struct {
	Name      string       // Trimmed display name.
	Alias     string       // Alias the command would get.
	Sanitized bool         // Whether the alias differs from the name the user typed.
	Result    alias.Result // Validation of Alias against the stored commands.
}

// Preview validates the alias a command called name would receive.
func (r *Registry) Preview(ctx context.Context, name, explicitAlias string) Preview {
	name = strings.TrimSpace(name)
	resolved, res := r.store.CheckAlias(ctx, name, explicitAlias)

	typed := name
	if strings.TrimSpace(explicitAlias) != "" {
		typed = strings.TrimSpace(explicitAlias)
	}

	return Preview{
		Name:      name,
		Alias:     resolved,
		Sanitized: resolved != typed,
		Result:    res,
	}
}

// Create validates and stores a new command. Nothing is stored when validation fails.
func (r *Registry) Create(ctx context.Context, name string, steps []string, explicitAlias string) (store.Command, error) {
	return r.store.Add(ctx, name, steps, explicitAlias)
}

// Rename changes the display name of a command. The alias is unchanged.
func (r *Registry) Rename(ctx context.Context, id, newName string) (store.Command, error) {
	return r.store.Update(ctx, id, store.Patch{Name: &newName})
}

// ReplaceSteps replaces all steps of a command.
func (r *Registry) ReplaceSteps(ctx context.Context, id string, steps []string) (store.Command, error) {
	if steps == nil {
		steps = []string{}
	}

	return r.store.Update(ctx, id, store.Patch{Steps: steps})
}

// Delete removes a command by id and reports whether it existed.
func (r *Registry) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.Delete(ctx, id)
}

// DeleteByName removes the command whose name or alias matches token and reports whether one existed.
func (r *Registry) DeleteByName(ctx context.Context, token string) (bool, error) {
	c, ok := r.resolveNameOrAlias(ctx, token)
	if !ok {
		return false, nil
	}

	return r.store.Delete(ctx, c.ID)
}

// Clear removes every command.
func (r *Registry) Clear(ctx context.Context) error {
	return r.store.Clear(ctx)
}
