// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package alias

import (
	"errors"
	"fmt"
	"strings"
)

const maxSuggestions = 3

var (
	// ErrEmptyAlias is returned when an alias is empty or blank.
	ErrEmptyAlias = errors.New("alias cannot be empty")
	// ErrReservedAlias is returned when an alias is a reserved command name.
	ErrReservedAlias = errors.New("alias is a reserved system command")
	// ErrDuplicateAlias is returned when an alias is already used by another command.
	ErrDuplicateAlias = errors.New("alias already exists")
)

// highCollisionPrefixes are tool names that tend to prefix user aliases.
var highCollisionPrefixes = []string{"git", "npm"}

// ReservedError is returned when an alias is reserved. It carries alternatives the caller can offer.
type ReservedError struct {
	Alias       string
	Suggestions []string
}

// Error implements the error interface for ReservedError.
func (e *ReservedError) Error() string {
	return fmt.Sprintf("cannot use %q as alias, it is a system command", e.Alias)
}

// Unwrap returns ErrReservedAlias.
func (e *ReservedError) Unwrap() error {
	return ErrReservedAlias
}

// PathCollisionWarning reports that an alias shadows, or is shadowed by, an executable on the PATH.
// It does not make an alias invalid.
type PathCollisionWarning struct {
	Alias string
	Path  string
}

// String implements fmt.Stringer.
func (w *PathCollisionWarning) String() string {
	return fmt.Sprintf("command %q already exists in your PATH at %s", w.Alias, w.Path)
}

// Result is the outcome of validating an alias.
type Result struct {
	Valid       bool
	Err         error                 // Set when Valid is false.
	Warning     *PathCollisionWarning // Optional, only when Valid is true.
	Suggestions []string              // Alternatives for a reserved alias.
}

// Validator checks aliases. The zero value looks up the process PATH.
type Validator struct {
	finder *Finder
}

// NewValidator returns a Validator using finder for PATH lookups.
func NewValidator(finder *Finder) *Validator {
	return &Validator{finder: finder}
}

// Validate checks alias with an OS backed Validator.
func Validate(alias string, existing []string) Result {
	return (&Validator{}).Validate(alias, existing)
}

// Validate checks, in order, that alias is not blank, not reserved and not in existing.
// An alias found on the PATH is valid with a warning.
func (v *Validator) Validate(alias string, existing []string) Result {
	if strings.TrimSpace(alias) == "" {
		return Result{Err: ErrEmptyAlias}
	}

	if IsReserved(alias) {
		s := SuggestAlternatives(alias)

		return Result{
			Err:         &ReservedError{Alias: alias, Suggestions: s},
			Suggestions: s,
		}
	}

	for _, e := range existing {
		if strings.EqualFold(e, alias) {
			return Result{Err: fmt.Errorf("%w: %q", ErrDuplicateAlias, alias)}
		}
	}

	finder := v.finder
	if finder == nil {
		finder = NewOSFinder()
	}

	if p, ok := finder.Look(alias); ok {
		return Result{Valid: true, Warning: &PathCollisionWarning{Alias: alias, Path: p}}
	}

	return Result{Valid: true}
}

// SuggestAlternatives returns up to three distinct aliases that can replace alias.
func SuggestAlternatives(alias string) []string {
	var candidates []string

	for _, p := range highCollisionPrefixes {
		if strings.HasPrefix(alias, p) {
			candidates = append(candidates, "my"+alias, p[:1]+alias[len(p):])
			break
		}
	}

	candidates = append(candidates, "my-"+alias, alias+"-cmd", alias+"1")

	if strings.Contains(alias, "-") {
		var sb strings.Builder

		for part := range strings.SplitSeq(alias, "-") {
			if part != "" {
				sb.WriteByte(part[0])
			}
		}

		if abbr := sb.String(); len(abbr) >= 2 && abbr != alias {
			candidates = append(candidates, abbr)
		}
	}

	seen := map[string]struct{}{alias: {}}
	out := make([]string, 0, maxSuggestions)

	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}

		seen[c] = struct{}{}

		out = append(out, c)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}
