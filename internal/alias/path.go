// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package alias

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

const goosWindows = "windows"

// Finder searches a PATH list for executables.
type Finder struct {
	Fs      afero.Fs // Filesystem to search, the OS filesystem in production.
	Path    string   // PATH list, separated by os.PathListSeparator.
	PathExt string   // Windows PATHEXT list, ignored elsewhere.
	GOOS    string   // Target operating system, defaults to runtime.GOOS.
}

// NewOSFinder returns a Finder for the current process environment.
func NewOSFinder() *Finder {
	return &Finder{
		Fs:      afero.NewOsFs(),
		Path:    os.Getenv("PATH"),
		PathExt: os.Getenv("PATHEXT"),
		GOOS:    runtime.GOOS,
	}
}

// Look returns the full path of the first executable called name on the PATH.
// A name containing a path separator is never looked up.
func (f *Finder) Look(name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", false
	}

	goos := f.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	candidates := []string{name}

	if goos == goosWindows {
		for ext := range strings.SplitSeq(strings.ToLower(f.PathExt), ";") {
			if ext != "" {
				candidates = append(candidates, name+ext)
			}
		}
	}

	for dir := range strings.SplitSeq(f.Path, string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}

		for _, c := range candidates {
			full := filepath.Join(dir, c)

			info, err := f.Fs.Stat(full)
			if err != nil || info.IsDir() {
				continue
			}

			if goos != goosWindows && info.Mode()&0o111 == 0 {
				continue
			}

			return full, true
		}
	}

	return "", false
}

// Exists reports whether name resolves to an executable on the PATH.
func (f *Finder) Exists(name string) bool {
	_, ok := f.Look(name)
	return ok
}

// ExistsOnPath reports whether alias resolves to an executable on the process PATH.
func ExistsOnPath(alias string) bool {
	return NewOSFinder().Exists(alias)
}
