// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs the steps of a command one after another through the host shell.
//
// Each step is a ShellCommand: a single shell invocation whose stdout and stderr are captured.
// The Engine runs steps strictly in order and stops at the first step that fails. Progress is
// available either as a synchronous StepFunc callback or as a lazy iter.Seq of StepEvent values.
// RunSequence produces an ExecutionResult with a plain-text transcript of what ran.
package runbatch
