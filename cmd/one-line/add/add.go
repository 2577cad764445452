// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package add contains the command that saves a new multi-step command.
package add

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/urfave/cli/v3"
)

const (
	aliasFlag  = "alias"
	strictFlag = "strict"
)

// New returns the add command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Save a new command",
		Description: `Save NAME as a command that runs each STEP in order.
The alias is derived from NAME (lowercase, spaces become dashes) unless --alias is given.
Aliases that are shell built-ins or common tools are refused. An alias that matches
an executable on your PATH is saved with a warning, or refused with --strict.

Example:
  one-line add "Deploy App" "make build" "./deploy.sh --prod"`,
		ArgsUsage: "NAME STEP [STEP...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     aliasFlag,
				Aliases:  []string{"a"},
				Usage:    "Use this alias instead of one derived from NAME",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:        strictFlag,
				Usage:       "Refuse an alias that matches an executable on the PATH",
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.Args().First())
	if name == "" {
		return cmdstate.Exit("a command name is required")
	}

	steps := cmd.Args().Tail()
	if len(steps) == 0 {
		return cmdstate.Exit("at least one step is required")
	}

	reg, err := cmdstate.Registry(ctx)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	w := cmdstate.Writer(cmd)
	explicit := cmd.String(aliasFlag)

	p := reg.Preview(ctx, name, explicit)
	if !p.Result.Valid {
		msg := p.Result.Err.Error()
		if len(p.Result.Suggestions) > 0 {
			msg += fmt.Sprintf("\ntry --%s with one of: %s", aliasFlag, strings.Join(p.Result.Suggestions, ", "))
		}

		return cmdstate.Exit(msg)
	}

	if p.Result.Warning != nil {
		if cmd.Bool(strictFlag) {
			return cmdstate.Exit(p.Result.Warning.String())
		}

		fmt.Fprintf(cmdstate.ErrWriter(cmd), "warning: %s\n", p.Result.Warning)
	}

	if p.Sanitized {
		fmt.Fprintf(w, "Alias sanitized to %q\n", p.Alias)
	}

	c, err := reg.Create(ctx, name, steps, explicit)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	fmt.Fprintf(w, "Saved %q with %d step(s). Run it with: one-line %s\n", c.Name, len(c.Steps), c.Alias)

	return nil
}
