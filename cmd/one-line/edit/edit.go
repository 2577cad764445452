// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package edit contains the commands that change a saved command in place.
package edit

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/urfave/cli/v3"
)

// NewRename returns the rename command. The alias is kept so existing habits keep working.
func NewRename() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Change a command's display name",
		ArgsUsage: "NAME|ALIAS|ID NEW_NAME",
		Action:    renameAction,
	}
}

func renameAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return cmdstate.Exit("usage: one-line rename NAME|ALIAS|ID NEW_NAME")
	}

	reg, c, err := cmdstate.Resolve(ctx, cmd.Args().Get(0))
	if err != nil {
		return err
	}

	updated, err := reg.Rename(ctx, c.ID, cmd.Args().Get(1))
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	fmt.Fprintf(cmdstate.Writer(cmd), "Renamed %q to %q (alias %s)\n", c.Name, updated.Name, updated.Alias)

	return nil
}

// NewSteps returns the steps command, which replaces every step of a command.
func NewSteps() *cli.Command {
	return &cli.Command{
		Name:      "steps",
		Usage:     "Replace a command's steps",
		ArgsUsage: "NAME|ALIAS|ID STEP [STEP...]",
		Action:    stepsAction,
	}
}

func stepsAction(ctx context.Context, cmd *cli.Command) error {
	reg, c, err := cmdstate.Resolve(ctx, cmd.Args().First())
	if err != nil {
		return err
	}

	steps := cmd.Args().Tail()
	if len(steps) == 0 {
		return cmdstate.Exit("at least one step is required")
	}

	updated, err := reg.ReplaceSteps(ctx, c.ID, steps)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	fmt.Fprintf(cmdstate.Writer(cmd), "Updated %q with %d step(s)\n", updated.Name, len(updated.Steps))

	return nil
}
