// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the one-line command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	oneline "github.com/matt-FFFFFF/one-line"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/add"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/aliases"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/bundle"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/edit"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/list"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/remove"
	"github.com/matt-FFFFFF/one-line/cmd/one-line/run"
	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
	"github.com/matt-FFFFFF/one-line/internal/registry"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/matt-FFFFFF/one-line/internal/settings"
	"github.com/matt-FFFFFF/one-line/internal/signalbroker"
	"github.com/matt-FFFFFF/one-line/internal/store"
	"github.com/urfave/cli/v3"
)

const (
	homeFlag        = "home"
	shellFlag       = "shell"
	stepTimeoutFlag = "step-timeout"
	verboseFlag     = "verbose"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:  "one-line",
		Usage: "save multi-step shell workflows and run them by alias",
		Description: `one-line stores named sequences of shell commands and runs them in order,
stopping at the first step that fails. Each saved command gets a short alias,
so "one-line deploy" runs every step of the "Deploy App" command.`,
		ArgsUsage: "[ALIAS]",
		Commands: []*cli.Command{
			add.New(),
			list.New(),
			run.New(),
			run.NewExec(),
			edit.NewRename(),
			edit.NewSteps(),
			remove.New(),
			remove.NewClear(),
			aliases.New(),
			bundle.NewExport(),
			bundle.NewImport(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  homeFlag,
				Usage: "directory holding commands.json (default ~/.one-line)",
			},
			&cli.StringFlag{
				Name:  shellFlag,
				Usage: "shell used to run each step",
			},
			&cli.DurationFlag{
				Name:  stepTimeoutFlag,
				Usage: "maximum run time for a single step, 0 for no limit",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "log at debug level",
			},
		},
		Before:    before,
		Action:    rootAction,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

// before resolves settings, applies flag overrides and stores the registry in the context.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	s, err := settings.Parse()
	if err != nil {
		return ctx, cmdstate.Exit(err.Error())
	}

	if cmd.IsSet(homeFlag) {
		s.Home = cmd.String(homeFlag)
	}

	if s.Home, err = settings.ResolveHome(s.Home); err != nil {
		return ctx, cmdstate.Exit(err.Error())
	}

	if cmd.IsSet(shellFlag) {
		s.Shell = cmd.String(shellFlag)
	}

	if cmd.IsSet(stepTimeoutFlag) {
		s.StepTimeout = cmd.Duration(stepTimeoutFlag)
	}

	if cmd.Bool(verboseFlag) {
		s.LogLevel = "DEBUG"
	}

	ctxlog.LevelVar.Set(ctxlog.ParseLevel(s.LogLevel))

	st, err := store.New(ctx, store.Config{Dir: s.Home, LockTimeout: s.LockTimeout})
	if err != nil {
		return ctx, cmdstate.Exit(err.Error())
	}

	ctxlog.Debug(ctx, "store opened", "path", st.Path())

	reg := registry.New(st, runbatch.NewEngine(s.Shell, s.StepTimeout))

	return registry.NewContext(ctx, reg), nil
}

// rootAction runs a bare alias, so "one-line deploy" is short for "one-line run deploy".
func rootAction(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Args().Present() {
		return cli.ShowAppHelp(cmd)
	}

	return run.Token(ctx, cmd, cmd.Args().First(), run.Options{})
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd := newRootCmd()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", oneline.Version, oneline.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Debug(ctx, "command execution failed", "error", err)
		os.Exit(1)
	}
}
