// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate gives subcommands access to the state the root command sets up.
package cmdstate

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/matt-FFFFFF/one-line/internal/registry"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const exitCode = 1

// ErrNoRegistry is returned when a subcommand runs without the root command's setup.
var ErrNoRegistry = errors.New("command store is not initialised")

// Registry returns the registry the root command stored in ctx.
func Registry(ctx context.Context) (*registry.Registry, error) {
	r, ok := registry.FromContext(ctx)
	if !ok {
		return nil, ErrNoRegistry
	}

	return r, nil
}

// Writer returns the writer for normal output.
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

// ErrWriter returns the writer for warnings.
func ErrWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}

// Colour reports whether w is a terminal that accepts colour.
func Colour(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	if _, noColour := os.LookupEnv("NO_COLOR"); noColour {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// Exit returns an error that makes the CLI exit with code 1 after printing msg.
func Exit(msg string) error {
	return cli.Exit(msg, exitCode)
}
