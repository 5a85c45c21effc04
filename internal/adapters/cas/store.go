// Package cas persists analysis results so separate linger processes share them.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"go.trai.ch/zerr"
)

// storeVersion is bumped whenever the on-disk layout changes; other versions are ignored.
const storeVersion = 1

var _ ports.ResultStore = (*Store)(nil)

type storeFile struct {
	Version int                  `msgpack:"version"`
	Entries []domain.StoredEntry `msgpack:"entries"`
}

// Store implements ports.ResultStore using a single msgpack file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the file at path. The file is created on first Save.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load returns the persisted entries. A missing, empty, or outdated file yields none.
func (s *Store) Load() ([]domain.StoredEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Join(domain.ErrStoreReadFailed, zerr.With(err, "path", s.path))
	}

	if len(data) == 0 {
		return nil, nil
	}

	var file storeFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(domain.ErrStoreUnmarshalFailed, zerr.With(err, "path", s.path))
	}

	if file.Version != storeVersion {
		return nil, nil
	}
	return file.Entries, nil
}

// Save replaces the file contents with entries.
// The file is written next to its final location and renamed into place.
func (s *Store) Save(entries []domain.StoredEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := msgpack.Marshal(storeFile{Version: storeVersion, Entries: entries})
	if err != nil {
		return errors.Join(domain.ErrStoreMarshalFailed, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrStoreCreateFailed, zerr.With(err, "dir", dir))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "dir", dir))
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", tmp.Name()))
	}
	if err := os.Chmod(tmp.Name(), domain.PrivateFilePerm); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", tmp.Name()))
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", s.path))
	}
	return nil
}
