package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confwatch/confwatch/pkg/errors"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func tickingClock(start time.Time) func() utc.Time {
	t := start
	return func() utc.Time {
		t = t.Add(time.Second)
		return utc.New(t)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "conferences.json"),
		WithClock(tickingClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))))
}

func TestStoreSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(payload{Name: "icml", Count: 3}, false))

	var got payload
	require.NoError(t, s.Load(&got))
	assert.Equal(t, payload{Name: "icml", Count: 3}, got)
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	var got payload
	err := s.Load(&got)
	assert.True(t, errors.IsNotFound(err))
}

func TestStoreLoadMalformed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	var got payload
	err := s.Load(&got)
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
}

func TestStoreSaveCreatesBackup(t *testing.T) {
	s := newTestStore(t)

	// First save has nothing to back up.
	require.NoError(t, s.Save(payload{Name: "v1"}, true))
	backups, err := s.ListBackups(0)
	require.NoError(t, err)
	assert.Empty(t, backups)

	require.NoError(t, s.Save(payload{Name: "v2"}, true))
	backups, err = s.ListBackups(0)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Contains(t, filepath.Base(backups[0]), "conferences_backup_")
}

func TestStoreListBackupsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(payload{Name: "v1"}, false))
	for i := 0; i < 3; i++ {
		_, err := s.Backup()
		require.NoError(t, err)
	}

	backups, err := s.ListBackups(2)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Greater(t, backups[0], backups[1], "newest timestamped name first")
}

func TestStoreRestore(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(payload{Name: "old"}, false))
	backup, err := s.Backup()
	require.NoError(t, err)
	require.NoError(t, s.Save(payload{Name: "new"}, false))

	require.NoError(t, s.Restore(backup))

	var got payload
	require.NoError(t, s.Load(&got))
	assert.Equal(t, "old", got.Name)

	// Restoring backed up the replaced contents too.
	backups, err := s.ListBackups(0)
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestStoreRestoreMissingBackup(t *testing.T) {
	s := newTestStore(t)
	err := s.Restore(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadMultiSource(t *testing.T) {
	dir := t.TempDir()

	t.Run("wrapped document", func(t *testing.T) {
		path := filepath.Join(dir, "wrapped.json")
		raw := `{"sources": {"ccfddl": [{"name": "ICML", "rank": "A"}]}}`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		multi, err := LoadMultiSource(path)
		require.NoError(t, err)
		require.Len(t, multi["ccfddl"], 1)
		assert.Equal(t, "ICML", multi["ccfddl"][0].Name)
	})

	t.Run("bare map", func(t *testing.T) {
		path := filepath.Join(dir, "bare.json")
		raw := `{"ccfddl": [{"name": "CVPR"}], "manual": []}`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		multi, err := LoadMultiSource(path)
		require.NoError(t, err)
		require.Len(t, multi["ccfddl"], 1)
		assert.Equal(t, "CVPR", multi["ccfddl"][0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMultiSource(filepath.Join(dir, "nope.json"))
		assert.True(t, errors.IsNotFound(err))
	})
}
