// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellCommand_Success(t *testing.T) {
	skipOnWindows(t)

	cmd := &ShellCommand{Label: "echo", Step: "echo hello; echo oops 1>&2"}
	res := cmd.Run(ctxlog.New(context.Background(), nil))

	require.NoError(t, res.Error)
	assert.Equal(t, ResultStatusSuccess, res.Status)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", string(res.StdOut))
	assert.Equal(t, "oops\n", string(res.StdErr))
	assert.Equal(t, "hello\noops\n", res.Output())
}

func TestShellCommand_NonZeroExit(t *testing.T) {
	skipOnWindows(t)

	res := (&ShellCommand{Step: "exit 3"}).Run(context.Background())

	assert.Equal(t, ResultStatusError, res.Status)
	assert.Equal(t, 3, res.ExitCode)
}

func TestShellCommand_ShellNotFound(t *testing.T) {
	res := (&ShellCommand{Shell: "/not/a/real/shell", Step: "true"}).Run(context.Background())

	var pathErr *os.PathError

	require.ErrorAs(t, res.Error, &pathErr)
	require.ErrorIs(t, res.Error, ErrCouldNotStartProcess)
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, ResultStatusError, res.Status)
}

func TestShellCommand_ShellFromPath(t *testing.T) {
	skipOnWindows(t)

	res := (&ShellCommand{Shell: "sh", Step: "echo found"}).Run(context.Background())

	require.NoError(t, res.Error)
	assert.Equal(t, "found\n", string(res.StdOut))
}

func TestShellCommand_BadWorkingDirectory(t *testing.T) {
	skipOnWindows(t)

	res := (&ShellCommand{Step: "true", Cwd: "/does/not/exist"}).Run(context.Background())
	require.ErrorIs(t, res.Error, ErrCouldNotStartProcess)
}

func TestShellCommand_ContextCancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	res := (&ShellCommand{Step: "sleep 10"}).Run(ctx)

	require.ErrorIs(t, res.Error, ErrCancelled)
	assert.Equal(t, ResultStatusError, res.Status)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestShellCommand_SignalForwarded(t *testing.T) {
	skipOnWindows(t)

	sigCh := make(chan os.Signal, 1)
	time.AfterFunc(100*time.Millisecond, func() { sigCh <- syscall.SIGTERM })

	res := (&ShellCommand{Step: "exec sleep 10", sigCh: sigCh}).Run(context.Background())

	require.ErrorIs(t, res.Error, ErrSignalReceived)
	assert.Equal(t, ResultStatusError, res.Status)
}

func TestShellCommand_DuplicateSignalKills(t *testing.T) {
	skipOnWindows(t)

	sigCh := make(chan os.Signal, 2)
	time.AfterFunc(100*time.Millisecond, func() {
		sigCh <- syscall.SIGUSR1
		sigCh <- syscall.SIGUSR1
	})

	// The shell ignores SIGUSR1, so only the second signal ends it.
	res := (&ShellCommand{Step: "trap '' USR1; sleep 10", sigCh: sigCh}).Run(context.Background())

	require.ErrorIs(t, res.Error, ErrSignalReceived)
	require.ErrorIs(t, res.Error, ErrDuplicateSignalReceived)
}

func TestReadAllUpToMax(t *testing.T) {
	ctx := context.Background()

	b, err := readAllUpToMax(ctx, strings.NewReader("short"), 10)
	require.NoError(t, err)
	assert.Equal(t, "short", string(b))

	b, err = readAllUpToMax(ctx, strings.NewReader(strings.Repeat("x", 25)), 10)
	require.ErrorIs(t, err, ErrBufferOverflow)
	assert.Len(t, b, 10)
}

func TestShellArgs(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"/bin/sh", []string{"sh", "-c", "echo hi"}},
		{"/usr/bin/bash", []string{"bash", "-c", "echo hi"}},
		{"cmd.exe", []string{"cmd.exe", "/C", "echo hi"}},
		{"pwsh", []string{"pwsh", "-NoProfile", "-NonInteractive", "-Command", "echo hi"}},
	}

	for _, tc := range tests {
		t.Run(tc.shell, func(t *testing.T) {
			assert.Equal(t, tc.want, shellArgs(tc.shell, "echo hi"))
		})
	}
}

func TestDefaultShell(t *testing.T) {
	skipOnWindows(t)
	assert.Equal(t, "/bin/sh", DefaultShell())
}
