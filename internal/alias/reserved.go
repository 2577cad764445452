// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package alias

import (
	"slices"
	"strings"
)

// ToolName is the name of the binary, which can never be an alias.
const ToolName = "one-line"

var reserved = func() map[string]struct{} {
	groups := [][]string{
		// shell built-ins
		{"cd", "pwd", "echo", "exit", "source", "alias", "export", "history", "set", "unset"},
		// file operations
		{
			"ls", "cat", "grep", "find", "chmod", "chown", "sudo", "su",
			"cp", "mv", "rm", "mkdir", "rmdir", "touch", "ln", "less", "more", "head", "tail",
		},
		// development tools
		{
			"git", "npm", "node", "python", "pip", "cargo", "go", "java", "ruby", "php",
			"docker", "kubectl", "terraform", "ansible", "make", "cmake",
		},
		// package managers
		{"apt", "yum", "brew", "pacman", "dnf", "snap"},
		// system utilities
		{"kill", "ps", "top", "htop", "ssh", "scp", "curl", "wget"},
		{ToolName},
	}

	m := make(map[string]struct{})

	for _, g := range groups {
		for _, w := range g {
			m[w] = struct{}{}
		}
	}

	return m
}()

// IsReserved reports whether alias is a reserved command name, ignoring case.
func IsReserved(alias string) bool {
	_, ok := reserved[strings.ToLower(strings.TrimSpace(alias))]
	return ok
}

// Reserved returns the reserved command names in sorted order.
func Reserved() []string {
	out := make([]string, 0, len(reserved))
	for k := range reserved {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}
