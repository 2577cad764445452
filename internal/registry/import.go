// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/one-line/internal/alias"
	"github.com/matt-FFFFFF/one-line/internal/config"
	"github.com/matt-FFFFFF/one-line/internal/store"
)

// ImportReport summarises an import.
type ImportReport struct {
	Created []store.Command
	Skipped []string // Names that already existed.
}

// Import creates every definition in b. Definitions whose name or alias is already taken are skipped;
// any other failure is collected and returned after the remaining definitions have been tried.
func (r *Registry) Import(ctx context.Context, b *config.Bundle) (ImportReport, error) {
	var (
		report ImportReport
		result *multierror.Error
	)

	for i, d := range b.Commands {
		c, err := r.Create(ctx, d.Name, d.Steps, d.Alias)

		switch {
		case err == nil:
			report.Created = append(report.Created, c)
		case errors.Is(err, store.ErrDuplicateName), errors.Is(err, alias.ErrDuplicateAlias):
			report.Skipped = append(report.Skipped, d.Name)
		default:
			result = multierror.Append(result, fmt.Errorf("commands[%d] %q: %w", i, d.Name, err))
		}
	}

	return report, result.ErrorOrNil()
}

// Export returns every stored command as a bundle called name.
func (r *Registry) Export(ctx context.Context, name string) *config.Bundle {
	return config.FromCommands(name, r.List(ctx))
}
