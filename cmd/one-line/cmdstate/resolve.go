// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"context"
	"strings"

	"github.com/matt-FFFFFF/one-line/internal/registry"
	"github.com/matt-FFFFFF/one-line/internal/store"
)

// Resolve finds the command named by the first argument, returning an exit error when there is none.
func Resolve(ctx context.Context, token string) (*registry.Registry, store.Command, error) {
	reg, err := Registry(ctx)
	if err != nil {
		return nil, store.Command{}, Exit(err.Error())
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, store.Command{}, Exit("a command name, alias or id is required")
	}

	c, ok := reg.Resolve(ctx, token)
	if !ok {
		return nil, store.Command{}, Exit((&registry.NotFoundError{By: "name, alias or id", Token: token}).Error())
	}

	return reg, c, nil
}
