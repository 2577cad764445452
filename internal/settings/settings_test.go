// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubHome(t *testing.T, dir string, err error) {
	t.Helper()

	stubs := gostub.Stub(&userHomeDir, func() (string, error) { return dir, err })
	t.Cleanup(stubs.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	stubHome(t, "/home/user", nil)

	for _, k := range []string{"ONE_LINE_HOME", "ONE_LINE_SHELL", "ONE_LINE_LOG_LEVEL", "ONE_LINE_LOCK_TIMEOUT", "ONE_LINE_STEP_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/user", DefaultDirName), s.Home)
	assert.Empty(t, s.Shell)
	assert.Equal(t, "WARN", s.LogLevel)
	assert.Equal(t, 5*time.Second, s.LockTimeout)
	assert.Zero(t, s.StepTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	stubHome(t, "/home/user", nil)
	t.Setenv("ONE_LINE_HOME", "/srv/one-line")
	t.Setenv("ONE_LINE_SHELL", "/bin/bash")
	t.Setenv("ONE_LINE_LOG_LEVEL", "debug")
	t.Setenv("ONE_LINE_LOCK_TIMEOUT", "250ms")
	t.Setenv("ONE_LINE_STEP_TIMEOUT", "1m")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/one-line", s.Home)
	assert.Equal(t, "/bin/bash", s.Shell)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 250*time.Millisecond, s.LockTimeout)
	assert.Equal(t, time.Minute, s.StepTimeout)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("ONE_LINE_LOCK_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestParse_LeavesHomeUnresolved(t *testing.T) {
	stubHome(t, "", errors.New("no home"))
	t.Setenv("ONE_LINE_HOME", "~/cmds")

	s, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "~/cmds", s.Home)
}

func TestResolveHome(t *testing.T) {
	stubHome(t, "/home/user", nil)

	tests := []struct {
		in   string
		want string
	}{
		{"", "/home/user/.one-line"},
		{"~", "/home/user"},
		{"~/cmds", "/home/user/cmds"},
		{"/opt/one-line/", "/opt/one-line"},
		{"relative/dir", "relative/dir"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ResolveHome(tc.in)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tc.want), got)
		})
	}
}

func TestResolveHome_NoHomeDir(t *testing.T) {
	stubHome(t, "", errors.New("no home"))

	_, err := ResolveHome("")
	require.ErrorIs(t, err, ErrNoHomeDir)

	got, err := ResolveHome("/explicit")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/explicit"), got)
}
