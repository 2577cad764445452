// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Command is a named, ordered sequence of shell steps.
type Command struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Alias      string    `json:"alias"`
	Steps      []string  `json:"steps"`
	CreatedAt  time.Time `json:"createdAt"`
	UsageCount int       `json:"usageCount,omitempty"`
}

// snapshot is the persisted document.
type snapshot struct {
	Commands []Command `json:"commands"`
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name  *string
	Steps []string
}

// SortForCompletion returns a copy of cmds ordered by usage count descending, then alias ascending.
func SortForCompletion(cmds []Command) []Command {
	out := slices.Clone(cmds)
	slices.SortStableFunc(out, func(a, b Command) int {
		if c := cmp.Compare(b.UsageCount, a.UsageCount); c != 0 {
			return c
		}

		return strings.Compare(a.Alias, b.Alias)
	})

	return out
}

func (s snapshot) indexByID(id string) int {
	return slices.IndexFunc(s.Commands, func(c Command) bool { return c.ID == id })
}

func (s snapshot) aliases() []string {
	out := make([]string, 0, len(s.Commands))
	for _, c := range s.Commands {
		out = append(out, c.Alias)
	}

	return out
}
