// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package remove contains the commands that delete saved commands.
package remove

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/urfave/cli/v3"
)

const yesFlag = "yes"

// New returns the delete command.
func New() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a saved command",
		ArgsUsage: "NAME|ALIAS|ID",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, c, err := cmdstate.Resolve(ctx, cmd.Args().First())
			if err != nil {
				return err
			}

			ok, err := reg.Delete(ctx, c.ID)
			if err != nil {
				return cmdstate.Exit(err.Error())
			}

			// Another process removed it between the lookup and the delete.
			if !ok {
				return cmdstate.Exit(fmt.Sprintf("command %q no longer exists", c.Name))
			}

			fmt.Fprintf(cmdstate.Writer(cmd), "Deleted %q (%s)\n", c.Name, c.Alias)

			return nil
		},
	}
}

// NewClear returns the clear command, which deletes every saved command.
func NewClear() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete every saved command",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        yesFlag,
				Aliases:     []string{"y"},
				Usage:       "Confirm that every command should be deleted",
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool(yesFlag) {
				return cmdstate.Exit("refusing to delete every command without --yes")
			}

			reg, err := cmdstate.Registry(ctx)
			if err != nil {
				return cmdstate.Exit(err.Error())
			}

			n := len(reg.List(ctx))

			if err := reg.Clear(ctx); err != nil {
				return cmdstate.Exit(err.Error())
			}

			fmt.Fprintf(cmdstate.Writer(cmd), "Deleted %d command(s)\n", n)

			return nil
		},
	}
}
