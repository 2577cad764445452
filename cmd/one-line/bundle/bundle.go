// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bundle contains the commands that move saved commands in and out of YAML files.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/matt-FFFFFF/one-line/internal/config"
	"github.com/urfave/cli/v3"
)

const (
	nameFlag    = "name"
	stdioArg    = "-"
	defaultName = "one-line commands"
)

// NewExport returns the export command.
func NewExport() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write every saved command to a YAML file",
		Description: `Write every saved command to FILE, or to stdout when FILE is omitted or "-".
Ids and usage counts are not exported.`,
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     nameFlag,
				Usage:    "Name recorded in the bundle",
				Value:    defaultName,
				OnlyOnce: true,
			},
		},
		Action: exportAction,
	}
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	reg, err := cmdstate.Registry(ctx)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	b := reg.Export(ctx, cmd.String(nameFlag))

	path := cmd.Args().First()
	if path == "" || path == stdioArg {
		if err := config.Encode(cmdstate.Writer(cmd), b); err != nil {
			return cmdstate.Exit(err.Error())
		}

		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	if err := errors.Join(config.Encode(f, b), f.Close()); err != nil {
		return cmdstate.Exit(err.Error())
	}

	fmt.Fprintf(cmdstate.Writer(cmd), "Exported %d command(s) to %s\n", len(b.Commands), path)

	return nil
}

// NewImport returns the import command.
func NewImport() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Save the commands defined in a YAML file",
		Description: `Read a bundle from FILE, or stdin when FILE is "-", and save each command.
Commands whose name or alias already exists are skipped.`,
		ArgsUsage: "FILE",
		Action:    importAction,
	}
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return cmdstate.Exit("a bundle file is required, use - for stdin")
	}

	reg, err := cmdstate.Registry(ctx)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	var r io.Reader = os.Stdin

	if path != stdioArg {
		f, err := os.Open(path)
		if err != nil {
			return cmdstate.Exit(err.Error())
		}
		defer f.Close() //nolint:errcheck

		r = f
	}

	b, err := config.Decode(r)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	report, err := reg.Import(ctx, b)

	w := cmdstate.Writer(cmd)
	for _, c := range report.Created {
		fmt.Fprintf(w, "Imported %q (%s)\n", c.Name, c.Alias)
	}

	for _, name := range report.Skipped {
		fmt.Fprintf(w, "Skipped %q, it already exists\n", name)
	}

	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	return nil
}
