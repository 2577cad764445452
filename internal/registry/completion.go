// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package registry

import (
	"context"

	"github.com/matt-FFFFFF/one-line/internal/store"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// CompletionCandidates returns every command, most used first, then by alias.
func (r *Registry) CompletionCandidates(ctx context.Context) []store.Command {
	return store.SortForCompletion(r.store.LoadAll(ctx))
}

// Suggest returns up to three aliases whose alias or name fuzzily matches token, best first.
func (r *Registry) Suggest(ctx context.Context, token string) []string {
	cmds := r.store.LoadAll(ctx)
	if token == "" || len(cmds) == 0 {
		return nil
	}

	targets := make([]string, 0, 2*len(cmds))
	owners := make([]int, 0, 2*len(cmds))

	for i, c := range cmds {
		targets = append(targets, c.Alias, c.Name)
		owners = append(owners, i, i)
	}

	seen := make(map[int]struct{})

	var out []string

	for _, m := range fuzzy.Find(token, targets) {
		i := owners[m.Index]
		if _, dup := seen[i]; dup {
			continue
		}

		seen[i] = struct{}{}

		out = append(out, cmds[i].Alias)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}
