// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the commands that execute steps: run for saved commands and exec for ad-hoc steps.
package run

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/matt-FFFFFF/one-line/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	cwdFlag   = "cwd"
	tuiFlag   = "tui"
	quietFlag = "quiet"
)

// Options control how a sequence is executed and reported.
type Options struct {
	Cwd   string // Working directory for every step, empty for the current directory.
	TUI   bool   // Show the interactive progress view.
	Quiet bool   // Print nothing but the error on failure.
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      cwdFlag,
			Aliases:   []string{"C"},
			Usage:     "Run the steps in this directory",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:        tuiFlag,
			Aliases:     []string{"t", "interactive"},
			Usage:       "Show an interactive progress view while the steps run",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        quietFlag,
			Aliases:     []string{"q"},
			Usage:       "Suppress step output and the summary line",
			DefaultText: "false",
			OnlyOnce:    true,
		},
	}
}

func optionsFrom(cmd *cli.Command) Options {
	return Options{
		Cwd:   cmd.String(cwdFlag),
		TUI:   cmd.Bool(tuiFlag),
		Quiet: cmd.Bool(quietFlag),
	}
}

// New returns the run command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run a saved command by name, alias or id",
		Description: `Run the steps of a saved command one after another.
Execution stops at the first step that exits non-zero; later steps are not run.
The command's usage count goes up after every successful run.`,
		ArgsUsage:     "NAME|ALIAS|ID",
		Flags:         flags(),
		Action:        actionFunc,
		ShellComplete: CompleteAliases,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	token := strings.TrimSpace(cmd.Args().First())
	if token == "" {
		return cmdstate.Exit("a command name, alias or id is required")
	}

	return Token(ctx, cmd, token, optionsFrom(cmd))
}

// Token resolves token to a saved command and runs it.
func Token(ctx context.Context, cmd *cli.Command, token string, opts Options) error {
	reg, err := cmdstate.Registry(ctx)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	c, ok := reg.Resolve(ctx, token)
	if !ok {
		msg := fmt.Sprintf("command with name, alias or id %q not found", token)
		if s := reg.Suggest(ctx, token); len(s) > 0 {
			msg += "\ndid you mean: " + strings.Join(s, ", ")
		}

		return cmdstate.Exit(msg)
	}

	ctxlog.Debug(ctx, "running saved command", "id", c.ID, "alias", c.Alias)

	res := execute(ctx, cmd, c.Name, c.Steps, opts,
		func(ctx context.Context, onStep runbatch.StepFunc) runbatch.ExecutionResult {
			return reg.RunByID(ctx, c.ID, opts.Cwd, onStep)
		})

	return report(ctx, cmd, c.Steps, res, opts)
}

// execute runs fn either behind the progress view or streaming each step's output as it finishes.
func execute(
	ctx context.Context, cmd *cli.Command, title string, steps []string, opts Options, fn tui.RunFunc,
) runbatch.ExecutionResult {
	w := cmdstate.Writer(cmd)

	if opts.TUI {
		// Logs written while the view owns the terminal would corrupt it.
		buf := new(bytes.Buffer)
		tuiCtx := ctxlog.NewForWriter(ctx, buf)

		res, err := tui.NewRunner(title, steps, tui.WithOutput(w)).Run(tuiCtx, fn)
		buf.WriteTo(cmdstate.ErrWriter(cmd)) //nolint:errcheck

		if err != nil {
			ctxlog.Error(ctx, "TUI execution error", "error", err)
		}

		return res
	}

	onStep := func(index int, output string) {
		if opts.Quiet {
			return
		}

		fmt.Fprintf(w, "\n[Step %d/%d] %s\n%s", index+1, len(steps), steps[index], output)

		if output != "" && !strings.HasSuffix(output, "\n") {
			fmt.Fprintln(w)
		}
	}

	return fn(ctx, onStep)
}

// report prints the summary and turns a failed result into a non-zero exit.
func report(ctx context.Context, cmd *cli.Command, steps []string, res runbatch.ExecutionResult, opts Options) error {
	w := cmdstate.Writer(cmd)

	if !opts.Quiet {
		if !opts.TUI && !res.Success && res.FailedStep >= 0 && res.FailedStep < len(steps) {
			fmt.Fprintf(w, "\n[Step %d/%d] %s\n", res.FailedStep+1, res.Total, steps[res.FailedStep])
		}

		fmt.Fprintln(w)

		if err := res.WriteText(w, &runbatch.OutputOptions{Colour: cmdstate.Colour(w)}); err != nil {
			ctxlog.Debug(ctx, "write summary", "error", err)
		}
	}

	if !res.Success {
		return cmdstate.Exit("Error: " + res.ErrorMessage())
	}

	return nil
}

// CompleteAliases prints saved aliases, most used first, for shell completion.
func CompleteAliases(ctx context.Context, cmd *cli.Command) {
	reg, err := cmdstate.Registry(ctx)
	if err != nil {
		return
	}

	w := cmdstate.Writer(cmd)
	for _, c := range reg.CompletionCandidates(ctx) {
		fmt.Fprintln(w, c.Alias)
	}
}
