// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/one-line/internal/alias"
	"github.com/matt-FFFFFF/one-line/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// FileName is the name of the snapshot file inside the store directory.
	FileName = "commands.json"
	// LockFileName is the name of the lock file inside the store directory.
	LockFileName = ".commands.lock"
	// DefaultLockTimeout is used when Config.LockTimeout is zero.
	DefaultLockTimeout = 5 * time.Second

	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	// ErrEmptyName is returned when a command name is empty or blank.
	ErrEmptyName = errors.New("command name cannot be empty")
	// ErrEmptySteps is returned when a command has no steps or a blank step.
	ErrEmptySteps = errors.New("command must have at least one step and no blank steps")
	// ErrDuplicateName is returned when another command already has the name.
	ErrDuplicateName = errors.New("command name already exists")
	// ErrNotFound is returned when no command matches.
	ErrNotFound = errors.New("command not found")
	// ErrWriteSnapshot is returned when the snapshot cannot be persisted.
	ErrWriteSnapshot = errors.New("could not write command snapshot")
	// ErrCreateDir is returned when the store directory cannot be created.
	ErrCreateDir = errors.New("could not create store directory")
)

// FsFactory returns the filesystem the store is created on.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Config locates the store.
type Config struct {
	Dir         string        // Directory holding commands.json.
	LockTimeout time.Duration // How long a mutation waits for the file lock.
}

// Option configures a Store.
type Option func(*Store)

// WithValidator sets the alias validator used by Add.
func WithValidator(v *alias.Validator) Option {
	return func(s *Store) {
		s.validator = v
	}
}

// WithClock sets the function used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the function used to generate command ids.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) {
		s.newID = f
	}
}

// Store is a handle on a command snapshot file.
// It is safe for concurrent use; mutations are serialized.
type Store struct {
	fs          afero.Fs
	dir         string
	path        string
	lock        locker
	lockTimeout time.Duration
	validator   *alias.Validator
	now         func() time.Time
	newID       func() string
	mu          sync.Mutex
}

// New returns a Store rooted at cfg.Dir, creating the directory and an empty snapshot if needed.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	fs := FsFactory()

	s := &Store{
		fs:          fs,
		dir:         cfg.Dir,
		path:        filepath.Join(cfg.Dir, FileName),
		lockTimeout: cfg.LockTimeout,
		validator:   alias.NewValidator(nil),
		now:         time.Now,
		newID:       uuid.NewString,
	}

	if s.lockTimeout <= 0 {
		s.lockTimeout = DefaultLockTimeout
	}

	for _, opt := range opts {
		opt(s)
	}

	s.lock = newLocker(fs, filepath.Join(cfg.Dir, LockFileName))

	if err := fs.MkdirAll(cfg.Dir, dirPerm); err != nil {
		return nil, errors.Join(ErrCreateDir, err)
	}

	exists, err := afero.Exists(fs, s.path)
	if err != nil {
		return nil, errors.Join(ErrCreateDir, err)
	}

	if !exists {
		ctxlog.Debug(ctx, "initialising command store", "path", s.path)

		if err := s.write(snapshot{}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the location of the snapshot file.
func (s *Store) Path() string {
	return s.path
}

// LoadAll returns every command in insertion order.
// A missing or unreadable snapshot yields an empty slice.
func (s *Store) LoadAll(ctx context.Context) []Command {
	snap, _ := s.read(ctx)
	return snap.Commands
}

// GetByID returns the command with the given id.
func (s *Store) GetByID(ctx context.Context, id string) (Command, bool) {
	return s.find(ctx, func(c Command) bool { return c.ID == id })
}

// GetByName returns the command whose name matches, ignoring case.
func (s *Store) GetByName(ctx context.Context, name string) (Command, bool) {
	return s.find(ctx, func(c Command) bool { return strings.EqualFold(c.Name, name) })
}

// GetByAlias returns the command whose alias matches, ignoring case.
func (s *Store) GetByAlias(ctx context.Context, a string) (Command, bool) {
	return s.find(ctx, func(c Command) bool { return strings.EqualFold(c.Alias, a) })
}

func (s *Store) find(ctx context.Context, match func(Command) bool) (Command, bool) {
	cmds := s.LoadAll(ctx)
	if i := slices.IndexFunc(cmds, match); i >= 0 {
		return cmds[i], true
	}

	return Command{}, false
}

// ResolveAlias returns the alias a new command would get, either the sanitized explicit alias or the sanitized name.
func ResolveAlias(name, explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return alias.Sanitize(explicit)
	}

	return alias.Sanitize(name)
}

// CheckAlias validates the alias a command called name would receive against the current snapshot.
// It does not mutate the store.
func (s *Store) CheckAlias(ctx context.Context, name, explicit string) (string, alias.Result) {
	resolved := ResolveAlias(name, explicit)
	snap, _ := s.read(ctx)

	return resolved, s.validator.Validate(resolved, snap.aliases())
}

// Add validates and appends a new command. All validation happens before anything is written.
func (s *Store) Add(ctx context.Context, name string, steps []string, explicitAlias string) (Command, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Command{}, ErrEmptyName
	}

	if err := checkSteps(steps); err != nil {
		return Command{}, err
	}

	var added Command

	err := s.mutate(ctx, func(snap *snapshot) (bool, error) {
		if i := snap.indexByName(name, ""); i >= 0 {
			return false, fmt.Errorf("%w: %q", ErrDuplicateName, snap.Commands[i].Name)
		}

		resolved := ResolveAlias(name, explicitAlias)

		res := s.validator.Validate(resolved, snap.aliases())
		if !res.Valid {
			return false, res.Err
		}

		if res.Warning != nil {
			ctxlog.Info(ctx, res.Warning.String())
		}

		added = Command{
			ID:        s.newID(),
			Name:      name,
			Alias:     resolved,
			Steps:     slices.Clone(steps),
			CreatedAt: s.now().UTC(),
		}
		snap.Commands = append(snap.Commands, added)

		return true, nil
	})
	if err != nil {
		return Command{}, err
	}

	ctxlog.Info(ctx, "command added", "id", added.ID, "alias", added.Alias)

	return added, nil
}

// Update applies p to the command with the given id. The alias never changes.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Command, error) {
	var name string

	if p.Name != nil {
		name = strings.TrimSpace(*p.Name)
		if name == "" {
			return Command{}, ErrEmptyName
		}
	}

	if p.Steps != nil {
		if err := checkSteps(p.Steps); err != nil {
			return Command{}, err
		}
	}

	var updated Command

	err := s.mutate(ctx, func(snap *snapshot) (bool, error) {
		i := snap.indexByID(id)
		if i < 0 {
			return false, fmt.Errorf("%w: id %q", ErrNotFound, id)
		}

		if p.Name != nil {
			if j := snap.indexByName(name, id); j >= 0 {
				return false, fmt.Errorf("%w: %q", ErrDuplicateName, snap.Commands[j].Name)
			}

			snap.Commands[i].Name = name
		}

		if p.Steps != nil {
			snap.Commands[i].Steps = slices.Clone(p.Steps)
		}

		updated = snap.Commands[i]

		return true, nil
	})

	return updated, err
}

// IncrementUsage adds one to the usage count of the command. Unknown ids are ignored.
func (s *Store) IncrementUsage(ctx context.Context, id string) error {
	return s.mutate(ctx, func(snap *snapshot) (bool, error) {
		i := snap.indexByID(id)
		if i < 0 {
			return false, nil
		}

		snap.Commands[i].UsageCount++

		return true, nil
	})
}

// Delete removes the command with the given id and reports whether it existed.
// Nothing is written when the id is unknown.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	var found bool

	err := s.mutate(ctx, func(snap *snapshot) (bool, error) {
		i := snap.indexByID(id)
		if i < 0 {
			return false, nil
		}

		found = true
		snap.Commands = slices.Delete(snap.Commands, i, i+1)

		return true, nil
	})

	return found, err
}

// Clear removes every command.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func(snap *snapshot) (bool, error) {
		snap.Commands = nil
		return true, nil
	})
}

// mutate runs fn against a freshly read snapshot under the lock and persists it when fn reports a change.
func (s *Store) mutate(ctx context.Context, fn func(*snapshot) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock.Lock(ctx, s.lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	snap, state := s.read(ctx)

	changed, err := fn(&snap)
	if err != nil || !changed {
		return err
	}

	if state == stateCorrupt {
		s.backupCorrupt(ctx)
	}

	return s.write(snap)
}

func checkSteps(steps []string) error {
	if len(steps) == 0 {
		return ErrEmptySteps
	}

	for i, st := range steps {
		if strings.TrimSpace(st) == "" {
			return fmt.Errorf("%w: step %d is blank", ErrEmptySteps, i+1)
		}
	}

	return nil
}

// indexByName finds a command, other than the one with id skipID, whose name collides with name.
// Names collide when their sanitized forms are equal, or when they are equal ignoring case.
func (s snapshot) indexByName(name, skipID string) int {
	key := alias.Sanitize(name)

	return slices.IndexFunc(s.Commands, func(c Command) bool {
		if c.ID == skipID && skipID != "" {
			return false
		}

		if strings.EqualFold(c.Name, name) {
			return true
		}

		return key != "" && alias.Sanitize(c.Name) == key
	})
}
