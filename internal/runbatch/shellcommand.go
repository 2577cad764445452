// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
	"github.com/matt-FFFFFF/one-line/internal/signalbroker"
)

const (
	maxBufferSize = 8 * 1024 * 1024        // 8MB
	waitDelay     = 500 * time.Millisecond // How long to wait for output after a killed step exits.
)

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrTimeoutExceeded is returned when the step exceeds its deadline.
	ErrTimeoutExceeded = errors.New("timeout exceeded")
	// ErrCancelled is returned when the context is cancelled while the step runs.
	ErrCancelled = errors.New("cancelled")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrSignalReceived is returned when an operating system signal is forwarded to the child process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
)

// ShellCommand is a single step run through a shell.
type ShellCommand struct {
	Label string         // Label used in logs.
	Shell string         // Shell executable, DefaultShell when empty.
	Step  string         // Command line passed to the shell.
	Cwd   string         // Working directory, the caller's when empty.
	sigCh chan os.Signal // Channel to receive signals, allows mocking in test.
}

// Run starts the shell, waits for it to exit and returns the captured output.
// The process is killed when ctx is done. Signals received while it runs are forwarded to it;
// a second signal of the same kind kills it.
func (c *ShellCommand) Run(ctx context.Context) *Result {
	logger := ctxlog.Logger(ctx).
		With("runnableType", "ShellCommand").
		With("label", c.Label)

	shell := c.Shell
	if shell == "" {
		shell = DefaultShell()
	}

	if filepath.Base(shell) == shell {
		if p, err := exec.LookPath(shell); err == nil {
			shell = p
		}
	}

	logger.Debug("command info", "shell", shell, "cwd", c.Cwd, "step", c.Step)

	res := &Result{Label: c.Label, Step: c.Step}
	start := time.Now()

	defer func() { res.Duration = time.Since(start) }()

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return res.fail(errors.Join(ErrFailedToCreatePipe, err))
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)
		return res.fail(errors.Join(ErrFailedToCreatePipe, err))
	}

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signalbroker.Stop(sigCh)
	}

	ps, err := os.StartProcess(shell, shellArgs(shell, c.Step), &os.ProcAttr{
		Dir:   c.Cwd,
		Env:   os.Environ(),
		Files: []*os.File{os.Stdin, wOut, wErr},
	})

	// The child holds its own copies of the write ends.
	closeAll(wOut, wErr)

	if err != nil {
		closeAll(rOut, rErr)
		return res.fail(errors.Join(ErrCouldNotStartProcess, err))
	}

	logger.Debug("process started", "pid", ps.Pid)

	var (
		readers        sync.WaitGroup
		stdout, stderr []byte
		outErr, errErr error
	)

	readers.Add(2)

	go func() {
		defer readers.Done()
		stdout, outErr = readAllUpToMax(ctx, rOut, maxBufferSize)
	}()

	go func() {
		defer readers.Done()
		stderr, errErr = readAllUpToMax(ctx, rErr, maxBufferSize)
	}()

	done := make(chan struct{})

	var (
		watchdog sync.WaitGroup
		killErr  error
	)

	watchdog.Add(1)

	go func() {
		defer watchdog.Done()
		killErr = watch(ctx, ps, sigCh, done)
	}()

	state, psErr := ps.Wait()

	close(done)
	watchdog.Wait()

	readersDone := make(chan struct{})

	go func() {
		readers.Wait()
		close(readersDone)
	}()

	// Descendants of a killed shell can keep the pipes open; stop waiting for them.
	if killErr != nil {
		select {
		case <-readersDone:
		case <-time.After(waitDelay):
			logger.Debug("output still open after process exit, closing pipes")
			closeAll(rOut, rErr)
			<-readersDone
		}
	} else {
		<-readersDone
	}

	closeAll(rOut, rErr)

	res.StdOut = stdout
	res.StdErr = stderr
	res.ExitCode = -1
	res.Error = errors.Join(psErr, outErr, errErr, killErr)

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	logger.Debug("process finished", "exitCode", res.ExitCode, "stdoutBytes", len(stdout), "stderrBytes", len(stderr))

	switch {
	case res.Error == nil && res.ExitCode == 0:
		res.Status = ResultStatusSuccess
	default:
		if res.ExitCode == 0 {
			res.ExitCode = -1
		}

		res.Status = ResultStatusError
	}

	return res
}

// watch forwards signals to ps and kills it when ctx is done.
// It returns why the process was interrupted, or nil when it was left alone.
func watch(ctx context.Context, ps *os.Process, sigCh <-chan os.Signal, done <-chan struct{}) error {
	var reasons []error

	seen := make(map[os.Signal]struct{})

	for {
		select {
		case s, ok := <-sigCh:
			if !ok {
				sigCh = nil
				continue
			}

			if _, dup := seen[s]; dup {
				ctxlog.Info(ctx, "received duplicate signal, killing process", "signal", s.String())
				killPs(ctx, ps)

				return errors.Join(append(reasons, ErrDuplicateSignalReceived)...)
			}

			seen[s] = struct{}{}

			ctxlog.Info(ctx, "forwarding signal", "signal", s.String(), "pid", ps.Pid)

			if err := ps.Signal(s); err != nil {
				ctxlog.Info(ctx, "failed to send signal", "signal", s.String(), "error", err)
			}

			reasons = append(reasons, ErrSignalReceived)

		case <-ctx.Done():
			ctxlog.Info(ctx, "context done, killing process", "pid", ps.Pid)
			killPs(ctx, ps)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errors.Join(append(reasons, ErrTimeoutExceeded)...)
			}

			return errors.Join(append(reasons, ErrCancelled)...)

		case <-done:
			return errors.Join(reasons...)
		}
	}
}

// readAllUpToMax reads r to EOF, keeping at most max bytes. The rest is drained so the writer never blocks.
func readAllUpToMax(ctx context.Context, r io.Reader, maxBytes int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := io.CopyN(&buf, r, maxBytes+1)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
		return buf.Bytes(), errors.Join(ErrFailedToReadBuffer, err)
	}

	if n > maxBytes {
		discarded, _ := io.Copy(io.Discard, r)
		ctxlog.Debug(ctx, "buffer overflow in readAllUpToMax", "bytesRead", n+discarded, "maxBytes", maxBytes)

		return buf.Bytes()[:maxBytes], ErrBufferOverflow
	}

	return buf.Bytes(), nil
}

func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Debug(ctx, "process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Error(ctx, "process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Info(ctx, "process killed", "pid", ps.Pid)
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
