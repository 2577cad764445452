// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, FileName), []byte(content), 0o644))
}

func TestLoad_MigratesMissingAlias(t *testing.T) {
	s, fs := newMemStore(t)
	legacy := `{
  "commands": [
    {"id": "1", "name": "Build My Program", "steps": ["make"], "createdAt": "2024-05-06T07:08:09.123Z"}
  ]
}`
	writeSnapshot(t, fs, legacy)

	cmds := s.LoadAll(context.Background())
	require.Len(t, cmds, 1)
	assert.Equal(t, "build-my-program", cmds[0].Alias)
	assert.Equal(t, 123_000_000, cmds[0].CreatedAt.Nanosecond())

	assert.Equal(t, legacy, string(snapshotBytes(t, fs)), "loading must not rewrite the file")

	c, ok := s.GetByAlias(context.Background(), "build-my-program")
	require.True(t, ok)
	assert.Equal(t, "1", c.ID)
}

func TestLoad_MigrationIsPersistedOnNextMutation(t *testing.T) {
	s, fs := newMemStore(t)
	writeSnapshot(t, fs, `{"commands":[{"id":"1","name":"Old One","steps":["true"]}]}`)

	require.NoError(t, s.IncrementUsage(context.Background(), "1"))

	var raw rawSnapshot
	require.NoError(t, json.Unmarshal(snapshotBytes(t, fs), &raw))
	require.Len(t, raw.Commands, 1)
	assert.Equal(t, "old-one", raw.Commands[0].Alias)
	assert.Equal(t, 1, raw.Commands[0].UsageCount)
}

func TestLoad_CorruptFileIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json"},
		{"truncated", `{"commands":[{"id":"1"`},
		{"wrong shape", `{"commands":"nope"}`},
		{"missing steps", `{"commands":[{"id":"1","name":"a","alias":"a"}]}`},
		{"missing id", `{"commands":[{"name":"a","alias":"a","steps":["x"]}]}`},
		{"duplicate id", `{"commands":[{"id":"1","name":"a","steps":["x"]},{"id":"1","name":"b","steps":["y"]}]}`},
		{"bad time", `{"commands":[{"id":"1","name":"a","steps":["x"],"createdAt":"yesterday"}]}`},
		{"negative usage", `{"commands":[{"id":"1","name":"a","steps":["x"],"usageCount":-1}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, fs := newMemStore(t)
			writeSnapshot(t, fs, tc.content)

			assert.Empty(t, s.LoadAll(context.Background()))
		})
	}
}

func TestLoad_ValidationCollectsEveryProblem(t *testing.T) {
	raw := rawSnapshot{Commands: []rawCommand{
		{ID: "1", Name: "ok", Steps: []string{"x"}},
		{ID: "", Name: "", Steps: nil},
		{ID: "3", Name: "bad", Steps: []string{"x"}, UsageCount: -2},
	}}

	_, err := upgrade(raw).validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "2 errors occurred")
	assert.Contains(t, msg, "command 1")
	assert.Contains(t, msg, "command 2")
	require.ErrorIs(t, err, errMissingID)
	require.ErrorIs(t, err, errBadUsage)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, fs.Remove(filepath.Join(testDir, FileName)))

	assert.Empty(t, s.LoadAll(context.Background()))
}

func TestMutation_BacksUpCorruptSnapshot(t *testing.T) {
	s, fs := newMemStore(t)
	writeSnapshot(t, fs, "garbage")

	_, err := s.Add(context.Background(), "deploy", []string{"echo"}, "")
	require.NoError(t, err)

	backup, err := afero.ReadFile(fs, filepath.Join(testDir, FileName+corruptSuffix))
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(backup))
	assert.Len(t, s.LoadAll(context.Background()), 1)
}

func TestWrite_Format(t *testing.T) {
	s, fs := newMemStore(t)

	c, err := s.Add(context.Background(), "deploy", []string{"echo 1", "echo 2"}, "")
	require.NoError(t, err)
	require.NoError(t, s.IncrementUsage(context.Background(), c.ID))

	want := `{
  "commands": [
    {
      "id": "id-1",
      "name": "deploy",
      "alias": "deploy",
      "steps": [
        "echo 1",
        "echo 2"
      ],
      "createdAt": "2025-03-04T05:06:07Z",
      "usageCount": 1
    }
  ]
}`
	assert.Equal(t, want, string(snapshotBytes(t, fs)))
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	s, fs := newMemStore(t)

	for _, n := range []string{"a", "b", "c"} {
		_, err := s.Add(context.Background(), n, []string{"echo " + n}, "")
		require.NoError(t, err)
	}

	entries, err := afero.ReadDir(fs, testDir)
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), e.Name())
	}
}

func TestWrite_ReadOnlyFilesystem(t *testing.T) {
	s, fs := newMemStore(t)
	s.fs = afero.NewReadOnlyFs(fs)

	_, err := s.Add(context.Background(), "deploy", []string{"echo"}, "")
	require.ErrorIs(t, err, ErrWriteSnapshot)
}
