// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	goosWindows          = "windows"    // GOOS value for Windows.
	commandSwitchWindows = "/C"         // Command switch for cmd.exe.
	commandSwitchUnix    = "-c"         // Command switch for POSIX shells.
	winSystem32          = "System32"   // Directory holding cmd.exe.
	cmdExe               = "cmd.exe"    // Windows command interpreter.
	binSh                = "/bin/sh"    // Default POSIX shell.
	winSystemRootEnv     = "SystemRoot" // Windows system root environment variable.
)

// DefaultShell returns the platform shell used when none is configured:
// cmd.exe under %SystemRoot% on Windows and /bin/sh elsewhere.
// The user's $SHELL is not consulted.
func DefaultShell() string {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe)
	}

	return binSh
}

// shellArgs returns argv for running step with shell, including argv[0].
func shellArgs(shell, step string) []string {
	base := filepath.Base(shell)
	name := strings.TrimSuffix(strings.ToLower(base), ".exe")

	switch name {
	case "cmd":
		return []string{base, commandSwitchWindows, step}
	case "pwsh", "powershell":
		return []string{base, "-NoProfile", "-NonInteractive", "-Command", step}
	default:
		return []string{base, commandSwitchUnix, step}
	}
}
