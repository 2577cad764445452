// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package settings reads the tool's environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultDirName is the store directory created under the user's home directory.
const DefaultDirName = ".one-line"

// ErrNoHomeDir is returned when ONE_LINE_HOME is unset and the user's home directory is unknown.
var ErrNoHomeDir = errors.New("cannot determine home directory, set ONE_LINE_HOME")

// Settings are the environment-driven options. Command line flags override them.
type Settings struct {
	Home        string        `env:"ONE_LINE_HOME"`
	Shell       string        `env:"ONE_LINE_SHELL"`
	LogLevel    string        `env:"ONE_LINE_LOG_LEVEL"    envDefault:"WARN"`
	LockTimeout time.Duration `env:"ONE_LINE_LOCK_TIMEOUT" envDefault:"5s"`
	StepTimeout time.Duration `env:"ONE_LINE_STEP_TIMEOUT" envDefault:"0s"`
}

// userHomeDir is replaced in tests.
var userHomeDir = os.UserHomeDir

// Parse reads the environment without resolving Home.
func Parse() (Settings, error) {
	var s Settings

	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}

	return s, nil
}

// Load parses the environment. An unset ONE_LINE_HOME becomes ~/.one-line.
func Load() (Settings, error) {
	s, err := Parse()
	if err != nil {
		return Settings{}, err
	}

	home, err := ResolveHome(s.Home)
	if err != nil {
		return Settings{}, err
	}

	s.Home = home

	return s, nil
}

// ResolveHome expands a leading ~ in dir, or returns ~/.one-line when dir is empty.
func ResolveHome(dir string) (string, error) {
	dir = strings.TrimSpace(dir)

	if dir != "" && dir != "~" && !strings.HasPrefix(dir, "~/") {
		return filepath.Clean(dir), nil
	}

	userHome, err := userHomeDir()
	if err != nil || userHome == "" {
		return "", errors.Join(ErrNoHomeDir, err)
	}

	switch {
	case dir == "":
		return filepath.Join(userHome, DefaultDirName), nil
	case dir == "~":
		return userHome, nil
	default:
		return filepath.Join(userHome, dir[2:]), nil
	}
}
