// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"

	"github.com/matt-FFFFFF/one-line/cmd/one-line/cmdstate"
	"github.com/matt-FFFFFF/one-line/internal/runbatch"
	"github.com/urfave/cli/v3"
)

// NewExec returns the exec command, which runs steps given on the command line without saving them.
func NewExec() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Run steps without saving them",
		ArgsUsage: "STEP [STEP...]",
		Flags:     flags(),
		Action:    execAction,
	}
}

func execAction(ctx context.Context, cmd *cli.Command) error {
	steps := cmd.Args().Slice()
	if len(steps) == 0 {
		return cmdstate.Exit("at least one step is required")
	}

	reg, err := cmdstate.Registry(ctx)
	if err != nil {
		return cmdstate.Exit(err.Error())
	}

	opts := optionsFrom(cmd)

	res := execute(ctx, cmd, "exec", steps, opts,
		func(ctx context.Context, onStep runbatch.StepFunc) runbatch.ExecutionResult {
			return reg.RunSteps(ctx, steps, opts.Cwd, onStep)
		})

	return report(ctx, cmd, steps, res, opts)
}
