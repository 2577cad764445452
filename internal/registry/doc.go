// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package registry is the facade the front end talks to.
// It composes the command store and the execution engine, resolves the token a user types
// to a stored command, runs it and records its usage.
package registry
