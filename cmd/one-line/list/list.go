// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list contains the command that prints saved commands.
package list

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/matt-FFFFFF/one-line/internal/store"
	"github.com/urfave/cli/v3"
)

const idsFlag = "ids"

var (
	styleName  = lipgloss.NewStyle().Bold(true)
	styleAlias = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// New returns the list command.
func New() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List saved commands and their steps",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        idsFlag,
				Usage:       "Include each command's id",
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	reg, err := cmdstate.Registry(ctx)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	w := cmdstate.Writer(cmd)
	cmds := reg.List(ctx)

	if len(cmds) == 0 {
		fmt.Fprintln(w, `No commands saved yet. Add one with: one-line add NAME STEP...`)
		return nil
	}

	write(w, cmds, cmd.Bool(idsFlag), cmdstate.Colour(w))

	return nil
}

func write(w io.Writer, cmds []store.Command, ids, colour bool) {
	render := func(s lipgloss.Style, str string) string {
		if !colour {
			return str
		}

		return s.Render(str)
	}

	for i, c := range cmds {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "%s %s", render(styleName, c.Name), render(styleAlias, "("+c.Alias+")"))

		if c.UsageCount > 0 {
			fmt.Fprintf(w, " %s", render(styleDim, fmt.Sprintf("used %d times", c.UsageCount)))
		}

		fmt.Fprintln(w)

		if ids {
			fmt.Fprintf(w, "  %s\n", render(styleDim, "id: "+c.ID))
		}

		for j, s := range c.Steps {
			fmt.Fprintf(w, "  %d. %s\n", j+1, s)
		}
	}
}
