// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/one-line/internal/store"
)

var (
	// ErrInvalidYaml is returned when a bundle cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrNoCommands is returned when a bundle has no commands.
	ErrNoCommands = errors.New("no commands specified")
	// ErrInvalidDefinition is returned when a command definition in a bundle is incomplete.
	ErrInvalidDefinition = errors.New("invalid command definition")
)

// Bundle is a named collection of command definitions.
type Bundle struct {
	Name        string       `yaml:"name,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Commands    []Definition `yaml:"commands"`
}

// Definition is a portable command: what the user typed, without local state.
type Definition struct {
	Name  string   `yaml:"name"`
	Alias string   `yaml:"alias,omitempty"`
	Steps []string `yaml:"steps"`
}

// Decode reads a bundle from r. Unknown fields are rejected and every definition is checked.
func Decode(r io.Reader) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err)
	}

	var b Bundle
	if err := yaml.UnmarshalWithOptions(data, &b, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err)
	}

	if len(b.Commands) == 0 {
		return nil, ErrNoCommands
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return &b, nil
}

// Validate reports every definition without a name or without steps.
func (b *Bundle) Validate() error {
	var result *multierror.Error

	for i, d := range b.Commands {
		if strings.TrimSpace(d.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("%w: commands[%d]: name is required", ErrInvalidDefinition, i))
		}

		if len(d.Steps) == 0 {
			result = multierror.Append(result, fmt.Errorf("%w: commands[%d]: at least one step is required", ErrInvalidDefinition, i))
		}
	}

	return result.ErrorOrNil()
}

// Encode writes b to w as YAML.
func Encode(w io.Writer, b *Bundle) error {
	data, err := yaml.MarshalWithOptions(b, yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	_, err = w.Write(data)

	return err
}

// FromCommands builds a bundle from stored commands, keeping their order.
func FromCommands(name string, cmds []store.Command) *Bundle {
	b := &Bundle{Name: name, Commands: make([]Definition, 0, len(cmds))}

	for _, c := range cmds {
		b.Commands = append(b.Commands, Definition{
			Name:  c.Name,
			Alias: c.Alias,
			Steps: c.Steps,
		})
	}

	return b
}
