// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui shows live progress while the steps of a command run.
// The Runner drives a bubbletea program from the engine's step callback; the Model renders one
// line per step with its status, duration and last line of output.
package tui
