// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package aliases contains the command that prints every alias, most used first.
// Shell completion scripts read its output.
package aliases

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/urfave/cli/v3"
)

const usageFlag = "usage"

// New returns the aliases command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "aliases",
		Usage: "Print aliases, most used first",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        usageFlag,
				Usage:       "Print the usage count after each alias",
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg, err := cmdstate.Registry(ctx)
			if err != nil {
				return cmdstate.Exit(err.Error())
			}

			w := cmdstate.Writer(cmd)

			for _, c := range reg.CompletionCandidates(ctx) {
				if cmd.Bool(usageFlag) {
					fmt.Fprintf(w, "%s\t%d\n", c.Alias, c.UsageCount)
					continue
				}

				fmt.Fprintln(w, c.Alias)
			}

			return nil
		},
	}
}
