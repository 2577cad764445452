// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a structured logger through a context.Context.
//
// The default logger writes to stderr through PrettyHandler so that the
// output of executed steps on stdout is never interleaved with log records.
// The level is held in LevelVar and is WARN unless ONE_LINE_LOG_LEVEL says otherwise.
package ctxlog
