// Package store provides JSON file persistence for catalog data: atomic
// writes, timestamped backups and restore. It performs all the disk I/O the
// reconciliation engine deliberately avoids.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/utc"

	"github.com/confwatch/confwatch/pkg/errors"
)

const backupTimestampLayout = "20060102_150405"

// Store persists one JSON document at a fixed path with a sibling backup
// directory.
type Store struct {
	path      string
	backupDir string
	now       func() utc.Time
}

// StoreOption defines a function that configures a Store instance.
type StoreOption func(*Store)

// WithBackupDir overrides the backup directory, by default "backups" next
// to the data file.
func WithBackupDir(dir string) StoreOption {
	return func(s *Store) { s.backupDir = dir }
}

// WithClock overrides the time source used for backup names.
func WithClock(now func() utc.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// New creates a store for the given data file path.
func New(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:      path,
		backupDir: filepath.Join(filepath.Dir(path), "backups"),
		now:       utc.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the data file into v. A missing file is reported as not
// found so callers can fall back to an empty catalog.
func (s *Store) Load(v any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &errors.NotFoundError{Resource: "data file", ID: s.path}
		}
		return errors.WrapIO("read", s.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapParse("json", s.path, err)
	}
	return nil
}

// Save writes v to the data file atomically: marshal, write a temp file in
// the same directory, rename over the target. When backup is set and a
// previous file exists it is backed up first.
func (s *Store) Save(v any, backup bool) error {
	if backup {
		if _, err := os.Stat(s.path); err == nil {
			if _, err := s.Backup(); err != nil {
				return err
			}
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapParse("json", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.WrapIO("mkdir", filepath.Dir(s.path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return errors.WrapIO("create", s.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.WrapIO("rename", s.path, err)
	}
	return nil
}

// Backup copies the current data file into the backup directory under a
// timestamped name and returns the backup path.
func (s *Store) Backup() (string, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", errors.WrapIO("mkdir", s.backupDir, err)
	}

	name := fmt.Sprintf("%s_backup_%s.json", s.baseName(), s.now().Format(backupTimestampLayout))
	dst := filepath.Join(s.backupDir, name)

	if err := copyFile(s.path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// ListBackups returns up to limit backup paths for this store's data file,
// newest first.
func (s *Store) ListBackups(limit int) ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", s.backupDir, err)
	}

	prefix := s.baseName() + "_backup_"
	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".json") {
			backups = append(backups, filepath.Join(s.backupDir, name))
		}
	}

	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	if limit > 0 && len(backups) > limit {
		backups = backups[:limit]
	}
	return backups, nil
}

// Restore replaces the data file with a backup, backing up the current
// contents first.
func (s *Store) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return &errors.NotFoundError{Resource: "backup", ID: backupPath}
	}
	if _, err := os.Stat(s.path); err == nil {
		if _, err := s.Backup(); err != nil {
			return err
		}
	}
	return copyFile(backupPath, s.path)
}

func (s *Store) baseName() string {
	return strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.WrapIO("create", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.WrapIO("copy", dst, err)
	}
	return out.Sync()
}
