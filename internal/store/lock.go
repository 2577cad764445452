// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const lockRetryDelay = 50 * time.Millisecond

// ErrLockTimeout is returned when the store lock cannot be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for command store lock")

// locker serializes mutations across processes.
type locker interface {
	Lock(ctx context.Context, timeout time.Duration) (unlock func(), err error)
}

// newLocker returns a file lock for the OS filesystem and a no-op lock for anything else.
func newLocker(fs afero.Fs, path string) locker {
	if _, ok := fs.(*afero.OsFs); ok {
		return &fileLocker{fl: flock.New(path)}
	}

	return noopLocker{}
}

type fileLocker struct {
	fl *flock.Flock
}

func (l *fileLocker) Lock(ctx context.Context, timeout time.Duration) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ok, err := l.fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, errors.Join(ErrLockTimeout, err)
	}

	if !ok {
		return nil, ErrLockTimeout
	}

	return func() { _ = l.fl.Unlock() }, nil
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, time.Duration) (func(), error) {
	return func() {}, nil
}
