// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinder_Look(t *testing.T) {
	sep := string(os.PathListSeparator)

	tests := []struct {
		name     string
		goos     string
		path     string
		pathExt  string
		lookup   string
		mode     os.FileMode
		wantPath string
		wantOK   bool
	}{
		{name: "found", goos: "linux", path: "/bin", lookup: "mockcommand", mode: 0o755, wantPath: "/bin/mockcommand", wantOK: true},
		{name: "not found", goos: "linux", path: "/bin", lookup: "nonexistent", mode: 0o755},
		{
			name: "multiple PATH entries", goos: "linux", path: "/non/existent" + sep + "/bin", lookup: "mockcommand",
			mode: 0o755, wantPath: "/bin/mockcommand", wantOK: true,
		},
		{name: "empty PATH", goos: "linux", path: "", lookup: "mockcommand", mode: 0o755},
		{name: "not executable", goos: "linux", path: "/bin", lookup: "mockcommand", mode: 0o644},
		{name: "empty name", goos: "linux", path: "/bin", lookup: "", mode: 0o755},
		{name: "name with separator", goos: "linux", path: "/bin", lookup: "../bin/mockcommand", mode: 0o755},
		{name: "directory", goos: "linux", path: "/", lookup: "bin", mode: 0o755},
		{
			name: "windows ignores mode", goos: "windows", path: "/bin", lookup: "mockcommand", mode: 0o644,
			wantPath: "/bin/mockcommand", wantOK: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/bin/mockcommand", []byte("x"), tc.mode))

			f := &Finder{Fs: fs, Path: tc.path, PathExt: tc.pathExt, GOOS: tc.goos}
			got, ok := f.Look(tc.lookup)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, filepath.FromSlash(tc.wantPath), got)
			assert.Equal(t, tc.wantOK, f.Exists(tc.lookup))
		})
	}
}

func TestFinder_WindowsPathExt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tools/deploy.exe", []byte("x"), 0o644))

	f := &Finder{Fs: fs, Path: "/tools", PathExt: ".COM;.EXE;.BAT", GOOS: "windows"}
	got, ok := f.Look("deploy")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/tools", "deploy.exe"), got)
}

func TestExistsOnPath_UsesProcessPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oneline-probe"), []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", dir)

	assert.True(t, ExistsOnPath("oneline-probe"))
	assert.False(t, ExistsOnPath("oneline-missing"))
}
