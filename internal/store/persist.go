// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/one-line/internal/alias"
	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
	"github.com/spf13/afero"
)

type loadState int

const (
	stateOK loadState = iota
	stateMissing
	stateCorrupt
)

// corruptSuffix is appended to a snapshot that could not be loaded before it is overwritten.
const corruptSuffix = ".corrupt"

var (
	errMissingID    = errors.New("missing id")
	errMissingName  = errors.New("missing name")
	errMissingSteps = errors.New("missing steps")
	errBadCreatedAt = errors.New("invalid createdAt")
	errBadUsage     = errors.New("negative usageCount")
	errDuplicateID  = errors.New("duplicate id")
)

// rawSnapshot is the tolerant on-disk shape. Fields written by older versions may be absent.
type rawSnapshot struct {
	Commands []rawCommand `json:"commands"`
}

type rawCommand struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Alias      string   `json:"alias"`
	Steps      []string `json:"steps"`
	CreatedAt  string   `json:"createdAt"`
	UsageCount int      `json:"usageCount"`
}

// read loads the snapshot. It never fails: problems are logged and yield an empty snapshot.
func (s *Store) read(ctx context.Context) (snapshot, loadState) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{}, stateMissing
	}

	if err != nil {
		ctxlog.Warn(ctx, "could not read command snapshot", "path", s.path, "error", err)
		return snapshot{}, stateCorrupt
	}

	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		ctxlog.Warn(ctx, "could not parse command snapshot", "path", s.path, "error", err)
		return snapshot{}, stateCorrupt
	}

	snap, err := upgrade(raw).validate()
	if err != nil {
		ctxlog.Warn(ctx, "command snapshot failed validation", "path", s.path, "error", err)
		return snapshot{}, stateCorrupt
	}

	return snap, stateOK
}

// upgrade fills in fields that older snapshots did not record. The result is not persisted until the next mutation.
func upgrade(raw rawSnapshot) rawSnapshot {
	for i := range raw.Commands {
		c := &raw.Commands[i]
		if c.Alias == "" {
			c.Alias = alias.Sanitize(c.Name)
		}
	}

	return raw
}

// validate converts the tolerant records into strict commands, collecting every problem.
func (raw rawSnapshot) validate() (snapshot, error) {
	var result *multierror.Error

	snap := snapshot{Commands: make([]Command, 0, len(raw.Commands))}
	ids := make(map[string]struct{}, len(raw.Commands))

	for i, rc := range raw.Commands {
		var errs []error

		if rc.ID == "" {
			errs = append(errs, errMissingID)
		} else if _, dup := ids[rc.ID]; dup {
			errs = append(errs, errDuplicateID)
		}

		ids[rc.ID] = struct{}{}

		if rc.Name == "" {
			errs = append(errs, errMissingName)
		}

		if len(rc.Steps) == 0 {
			errs = append(errs, errMissingSteps)
		}

		if rc.UsageCount < 0 {
			errs = append(errs, errBadUsage)
		}

		var created time.Time

		if rc.CreatedAt != "" {
			t, err := time.Parse(time.RFC3339Nano, rc.CreatedAt)
			if err != nil {
				errs = append(errs, errors.Join(errBadCreatedAt, err))
			}

			created = t
		}

		if len(errs) > 0 {
			result = multierror.Append(result, fmt.Errorf("command %d: %w", i, errors.Join(errs...)))
			continue
		}

		snap.Commands = append(snap.Commands, Command{
			ID:         rc.ID,
			Name:       rc.Name,
			Alias:      rc.Alias,
			Steps:      rc.Steps,
			CreatedAt:  created,
			UsageCount: rc.UsageCount,
		})
	}

	return snap, result.ErrorOrNil()
}

// write persists snap through a temporary file in the same directory and a rename.
func (s *Store) write(snap snapshot) error {
	if snap.Commands == nil {
		snap.Commands = []Command{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Join(ErrWriteSnapshot, err)
	}

	tmp, err := afero.TempFile(s.fs, s.dir, FileName+".tmp-*")
	if err != nil {
		return errors.Join(ErrWriteSnapshot, err)
	}

	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)

		return errors.Join(ErrWriteSnapshot, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}

	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}

	if err := tmp.Close(); err != nil {
		return cleanup(err)
	}

	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		return cleanup(err)
	}

	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.Join(ErrWriteSnapshot, err)
	}

	return nil
}

// backupCorrupt keeps a copy of an unreadable snapshot before it is replaced.
func (s *Store) backupCorrupt(ctx context.Context) {
	dst := s.path + corruptSuffix
	if err := s.fs.Rename(s.path, dst); err != nil {
		ctxlog.Warn(ctx, "could not back up corrupt command snapshot", "path", s.path, "error", err)
		return
	}

	ctxlog.Warn(ctx, "corrupt command snapshot moved aside", "backup", filepath.Base(dst))
}
